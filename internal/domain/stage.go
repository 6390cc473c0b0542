package domain

import (
	"fmt"
	"strings"
)

// Stage is a plant growth stage.
type Stage string

const (
	StageVegetative   Stage = "vegetative"
	StageFlowering    Stage = "flowering"
	StageFruitSetting Stage = "fruit-setting"
	StageHarvest      Stage = "harvest"
)

// Stages lists all growth stages in lifecycle order.
var Stages = []Stage{StageVegetative, StageFlowering, StageFruitSetting, StageHarvest}

type stageAlias struct {
	alias string
	stage Stage
}

// stageAliases lists accepted spellings (English and Arabic, as sent by
// the dashboard) in a fixed match order. Aliases must be lowercase.
var stageAliases = []stageAlias{
	{"vegetative", StageVegetative},
	{"vegetation", StageVegetative},
	{"خضري", StageVegetative},
	{"fruit-setting", StageFruitSetting},
	{"fruit setting", StageFruitSetting},
	{"fruiting", StageFruitSetting},
	{"عقد الثمار", StageFruitSetting},
	{"إثمار", StageFruitSetting},
	{"اثمار", StageFruitSetting},
	{"flowering", StageFlowering},
	{"flower", StageFlowering},
	{"bloom", StageFlowering},
	{"إزهار", StageFlowering},
	{"ازهار", StageFlowering},
	{"أزهار", StageFlowering},
	{"harvest", StageHarvest},
	{"حصاد", StageHarvest},
}

// ParseStage resolves free-text stage input to a canonical Stage.
// Containment matching tolerates surrounding words such as
// "مرحلة النمو الخضري"; the alias order is fixed so results are
// deterministic.
func ParseStage(raw string) (Stage, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "", fmt.Errorf("empty growth stage")
	}
	for _, a := range stageAliases {
		if name == a.alias {
			return a.stage, nil
		}
	}
	for _, a := range stageAliases {
		if strings.Contains(name, a.alias) {
			return a.stage, nil
		}
	}
	return "", fmt.Errorf("unknown growth stage %q", raw)
}
