package rules

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Rules holds the numeric tables the report engine is parameterized with.
// Values ship as embedded defaults and can be overridden with a YAML file.
type Rules struct {
	Scoring ScoringRules `yaml:"scoring"`
	ROI     ROIRules     `yaml:"roi"`
	Payback PaybackRules `yaml:"payback"`
}

// ScoringRules holds the per-dimension signal tables.
type ScoringRules struct {
	Base       int            `yaml:"base"`
	Technology DimensionRules `yaml:"technology"`
	Data       DimensionRules `yaml:"data"`
	Team       DimensionRules `yaml:"team"`
	Process    DimensionRules `yaml:"process"`
	Change     DimensionRules `yaml:"change"`
	Security   DimensionRules `yaml:"security"`
}

// DimensionRules maps input signals to point contributions for one dimension.
// Signals is keyed by field name, then by field value. PerTool awards points
// per declared current tool, capped at MaxToolPoints.
type DimensionRules struct {
	Signals       map[string]map[string]int `yaml:"signals"`
	PerTool       int                       `yaml:"perTool"`
	MaxToolPoints int                       `yaml:"maxToolPoints"`
}

// ROIRules holds annual ROI base ranges keyed by company-size band.
type ROIRules struct {
	SizeBands map[string]ROIRange `yaml:"sizeBands"`
}

// ROIRange is an annual ROI range in whole dollars.
type ROIRange struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

// PaybackRules maps the declared timeline band to an estimated payback period.
type PaybackRules struct {
	DefaultMonths int            `yaml:"defaultMonths"`
	ByTimeline    map[string]int `yaml:"byTimeline"`
}

// Load returns the embedded defaults, overridden by the YAML file at path
// when path is non-empty.
func Load(path string) (Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(defaultsYAML, &r); err != nil {
		return Rules{}, fmt.Errorf("parse embedded rules: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		return r, r.validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	return r, r.validate()
}

// MustDefaults returns the embedded defaults and panics on a malformed embed.
// Intended for tests and in-process wiring where the embed is trusted.
func MustDefaults() Rules {
	r, err := Load("")
	if err != nil {
		panic(err)
	}
	return r
}

func (r Rules) validate() error {
	if r.Scoring.Base <= 0 || r.Scoring.Base > 100 {
		return fmt.Errorf("scoring.base must be in (0,100], got %d", r.Scoring.Base)
	}
	if len(r.ROI.SizeBands) == 0 {
		return fmt.Errorf("roi.sizeBands is empty")
	}
	for band, rng := range r.ROI.SizeBands {
		if rng.Low < 0 || rng.High < rng.Low {
			return fmt.Errorf("roi.sizeBands[%s]: invalid range %d-%d", band, rng.Low, rng.High)
		}
	}
	if r.Payback.DefaultMonths <= 0 {
		return fmt.Errorf("payback.defaultMonths must be positive")
	}
	return nil
}
