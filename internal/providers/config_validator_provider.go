package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"github.com/Na1awut/NDLP/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the struct-tag rules, then the cross-field rules the tags
// cannot express.
func (v *CnfValidator) Validate() error {
	res := validate.Struct(v.conf)
	if !res.Validate() {
		return fmt.Errorf("invalid config: %s", res.Errors.One())
	}

	e := v.conf.EVC
	if e.EnergyMin >= e.EnergyMax {
		return fmt.Errorf("invalid config: evc.energyMin must be below evc.energyMax")
	}
	if e.MaxStep <= 0 {
		return fmt.Errorf("invalid config: evc.maxStep must be positive")
	}
	if e.AlertThreshold < e.EnergyMin || e.AlertThreshold > e.EnergyMax {
		return fmt.Errorf("invalid config: evc.alertThreshold outside the energy bounds")
	}
	if e.ZoneDeadband < 0 || e.ZoneDeadband >= e.MaxStep {
		return fmt.Errorf("invalid config: evc.zoneDeadband must be in [0, maxStep)")
	}
	if v.conf.Token.Length < 4 {
		return fmt.Errorf("invalid config: token.length must be at least 4")
	}
	return nil
}
