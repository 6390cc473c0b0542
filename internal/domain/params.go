package domain

// Parameter identifies one tracked soil measurement.
type Parameter string

const (
	ParamTemperature Parameter = "temperature"
	ParamMoisture    Parameter = "moisture"
	ParamEC          Parameter = "electricalConductivity"
	ParamPH          Parameter = "pH"
	ParamNitrogen    Parameter = "nitrogen"
	ParamPhosphorus  Parameter = "phosphorus"
	ParamPotassium   Parameter = "potassium"
	ParamSoilHealth  Parameter = "soilHealthIndex"
	ParamHumic       Parameter = "humicIndex"
)

// Parameters lists every tracked parameter in display order.
var Parameters = []Parameter{
	ParamTemperature,
	ParamMoisture,
	ParamEC,
	ParamPH,
	ParamNitrogen,
	ParamPhosphorus,
	ParamPotassium,
	ParamSoilHealth,
	ParamHumic,
}

// wireKeys maps each parameter to the short key used by the Nasgh
// device firmware and by stored JSON.
var wireKeys = map[Parameter]string{
	ParamTemperature: "temp",
	ParamMoisture:    "moisture",
	ParamEC:          "ec",
	ParamPH:          "ph",
	ParamNitrogen:    "n",
	ParamPhosphorus:  "p",
	ParamPotassium:   "k",
	ParamSoilHealth:  "shs",
	ParamHumic:       "humic",
}

// wireAliases covers alternative spellings seen in device payloads.
// Older firmware revisions post single-letter keys for temperature,
// moisture and humic.
var wireAliases = map[string]Parameter{
	"t":           ParamTemperature,
	"temperature": ParamTemperature,
	"m":           ParamMoisture,
	"hum":         ParamHumic,
	"humic_index": ParamHumic,
	"shs_index":   ParamSoilHealth,
}

// WireKey returns the short JSON key for p.
func (p Parameter) WireKey() string {
	if k, ok := wireKeys[p]; ok {
		return k
	}
	return string(p)
}

// ParameterFromWire resolves a JSON key (short, aliased, or canonical)
// to a Parameter. Matching is exact; unknown keys return false.
func ParameterFromWire(key string) (Parameter, bool) {
	for p, k := range wireKeys {
		if k == key {
			return p, true
		}
	}
	if p, ok := wireAliases[key]; ok {
		return p, true
	}
	for _, p := range Parameters {
		if string(p) == key {
			return p, true
		}
	}
	return "", false
}
