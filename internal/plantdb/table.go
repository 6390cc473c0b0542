package plantdb

import "github.com/haithamsoil/nasgh/internal/domain"

// The range tables below are the project's pilot agronomy numbers.
// Several plants share a template (vegetables, fruit trees); sharing is
// a storage shortcut only, it implies nothing about the plants
// themselves. Nothing here is mutated at runtime and LookupStatic
// always hands out copies.

func stages(veg, flower, fruit, harvest domain.RangeRecord) map[domain.Stage]domain.RangeRecord {
	return map[domain.Stage]domain.RangeRecord{
		domain.StageVegetative:   veg,
		domain.StageFlowering:    flower,
		domain.StageFruitSetting: fruit,
		domain.StageHarvest:      harvest,
	}
}

func rec(temp, moist, ec, ph, n, p, k, shs, humic domain.Band) domain.RangeRecord {
	return domain.RangeRecord{
		domain.ParamTemperature: temp,
		domain.ParamMoisture:    moist,
		domain.ParamEC:          ec,
		domain.ParamPH:          ph,
		domain.ParamNitrogen:    n,
		domain.ParamPhosphorus:  p,
		domain.ParamPotassium:   k,
		domain.ParamSoilHealth:  shs,
		domain.ParamHumic:       humic,
	}
}

func b(min, max float64) domain.Band { return domain.Band{Min: min, Max: max} }

var (
	// Generic vegetable template (tomato, cucumber, pepper, eggplant).
	vegetableBase = rec(
		b(18, 26), b(55, 65), b(800, 2200), b(6.0, 7.5),
		b(100, 160), b(60, 100), b(200, 300), b(70, 90), b(6, 18),
	)
	vegetableFlower = rec(
		b(18, 26), b(50, 62), b(900, 2300), b(6.0, 7.2),
		b(80, 140), b(70, 110), b(220, 320), b(70, 90), b(6, 18),
	)
	vegetableFruit = rec(
		b(18, 27), b(50, 60), b(1000, 2400), b(6.0, 7.0),
		b(70, 130), b(70, 110), b(240, 340), b(70, 90), b(6, 18),
	)
	vegetableHarvest = rec(
		b(16, 26), b(45, 58), b(900, 2200), b(6.0, 7.0),
		b(60, 120), b(60, 100), b(220, 320), b(70, 90), b(6, 18),
	)
	vegetableRanges = stages(vegetableBase, vegetableFlower, vegetableFruit, vegetableHarvest)

	// Leafy greens: shallow roots, steadier moisture, lighter feeding.
	leafyBase = rec(
		b(14, 22), b(60, 70), b(700, 1800), b(6.0, 7.0),
		b(110, 170), b(50, 90), b(160, 250), b(70, 90), b(6, 18),
	)
	leafyRanges = stages(leafyBase, leafyBase, leafyBase, leafyBase)

	// Fruit trees (lemon, olive, grape): drier soil tolerated, wider EC.
	fruitTreeBase = rec(
		b(16, 30), b(40, 55), b(900, 2500), b(6.0, 8.0),
		b(80, 140), b(50, 90), b(180, 280), b(65, 90), b(5, 16),
	)
	fruitTreeFlower = rec(
		b(16, 30), b(42, 58), b(900, 2400), b(6.0, 7.8),
		b(70, 130), b(60, 100), b(200, 300), b(65, 90), b(5, 16),
	)
	fruitTreeRanges = stages(fruitTreeBase, fruitTreeFlower, fruitTreeFlower, fruitTreeBase)

	// Date palm: high salinity tolerance, hot climate.
	palmBase = rec(
		b(22, 38), b(35, 50), b(1500, 4000), b(6.5, 8.5),
		b(70, 130), b(40, 80), b(200, 320), b(60, 88), b(4, 14),
	)
	palmRanges = stages(palmBase, palmBase, palmBase, palmBase)

	// Strawberry: cool, acidic, moisture sensitive.
	berryBase = rec(
		b(15, 24), b(60, 70), b(700, 1600), b(5.5, 6.8),
		b(90, 150), b(60, 100), b(180, 280), b(72, 92), b(6, 18),
	)
	berryRanges = stages(berryBase, berryBase, berryBase, berryBase)
)

// LookupStatic returns the built-in target ranges for a plant key and
// growth stage. The returned record is a copy; mutating it never
// affects the table.
func LookupStatic(plantKey string, stage domain.Stage) (domain.RangeRecord, bool) {
	for _, p := range plants {
		if p.key != plantKey {
			continue
		}
		if r, ok := p.ranges[stage]; ok {
			return r.Clone(), true
		}
		return nil, false
	}
	return nil, false
}
