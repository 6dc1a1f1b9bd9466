package game

import (
	"errors"
	"fmt"
	"strings"
)

// UnitInformation is the stat sheet of a unit type.
//
// Every field is optional. A nil field means the engine did not specify it,
// which is not the same as zero: a nil attackRange means the unit never
// attacks, a nil cost means the unit is free in that resource.
type UnitInformation struct {
	AttackDamageTower  *float64 `json:"attackDamageTower,omitempty"`
	AttackDamageWalker *float64 `json:"attackDamageWalker,omitempty"`
	AttackRange        *float64 `json:"attackRange,omitempty"`
	GetHitRadius       *float64 `json:"getHitRadius,omitempty"`
	UnitCategory       *int     `json:"unitCategory,omitempty"`

	ShieldPerUnit   *float64 `json:"shieldPerUnit,omitempty"`
	ShieldRange     *float64 `json:"shieldRange,omitempty"`
	ShieldBonusPerY *float64 `json:"shieldBonusPerY,omitempty"`
	ShieldDecay     *float64 `json:"shieldDecay,omitempty"`

	StartHealth *float64 `json:"startHealth,omitempty"`
	Speed       *float64 `json:"speed,omitempty"`

	Cost1 *float64 `json:"cost1,omitempty"` // structure points
	Cost2 *float64 `json:"cost2,omitempty"` // mobile points

	Display   *string `json:"display,omitempty"`
	Shorthand *string `json:"shorthand,omitempty"`

	Icon       *string  `json:"icon,omitempty"`
	IconXScale *float64 `json:"iconxScale,omitempty"`
	IconYScale *float64 `json:"iconyScale,omitempty"`

	// Upgrade holds the stats that change when the unit is upgraded.
	Upgrade *UnitInformation `json:"upgrade,omitempty"`
}

// Float returns a pointer to v, for building stat sheets in code.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone performs a deep copy of the sheet, including its upgrade overlay.
func (u *UnitInformation) Clone() *UnitInformation {
	if u == nil {
		return nil
	}
	return &UnitInformation{
		AttackDamageTower:  cloneFloat(u.AttackDamageTower),
		AttackDamageWalker: cloneFloat(u.AttackDamageWalker),
		AttackRange:        cloneFloat(u.AttackRange),
		GetHitRadius:       cloneFloat(u.GetHitRadius),
		UnitCategory:       cloneInt(u.UnitCategory),
		ShieldPerUnit:      cloneFloat(u.ShieldPerUnit),
		ShieldRange:        cloneFloat(u.ShieldRange),
		ShieldBonusPerY:    cloneFloat(u.ShieldBonusPerY),
		ShieldDecay:        cloneFloat(u.ShieldDecay),
		StartHealth:        cloneFloat(u.StartHealth),
		Speed:              cloneFloat(u.Speed),
		Cost1:              cloneFloat(u.Cost1),
		Cost2:              cloneFloat(u.Cost2),
		Display:            cloneString(u.Display),
		Shorthand:          cloneString(u.Shorthand),
		Icon:               cloneString(u.Icon),
		IconXScale:         cloneFloat(u.IconXScale),
		IconYScale:         cloneFloat(u.IconYScale),
		Upgrade:            u.Upgrade.Clone(),
	}
}

// ApplyUpgrade folds the upgrade overlay into the sheet and drops the overlay.
//
// Present overlay stats replace the base value, except the two costs, which
// are added to the base. Calling it again is a no-op since no overlay is left.
// Only call this on a unit's private copy, never on a catalog entry.
func (u *UnitInformation) ApplyUpgrade() {
	up := u.Upgrade
	if up == nil {
		return
	}

	overwrite := func(dst **float64, src *float64) {
		if src != nil {
			*dst = cloneFloat(src)
		}
	}
	overwrite(&u.AttackDamageTower, up.AttackDamageTower)
	overwrite(&u.AttackDamageWalker, up.AttackDamageWalker)
	overwrite(&u.AttackRange, up.AttackRange)
	overwrite(&u.GetHitRadius, up.GetHitRadius)
	if up.UnitCategory != nil {
		u.UnitCategory = cloneInt(up.UnitCategory)
	}
	overwrite(&u.ShieldPerUnit, up.ShieldPerUnit)
	overwrite(&u.ShieldRange, up.ShieldRange)
	overwrite(&u.ShieldBonusPerY, up.ShieldBonusPerY)
	overwrite(&u.ShieldDecay, up.ShieldDecay)
	overwrite(&u.StartHealth, up.StartHealth)
	overwrite(&u.Speed, up.Speed)

	add := func(dst **float64, src *float64) {
		if src == nil {
			return
		}
		sum := *src
		if *dst != nil {
			sum += **dst
		}
		*dst = &sum
	}
	add(&u.Cost1, up.Cost1)
	add(&u.Cost2, up.Cost2)

	u.Upgrade = nil
}

// Cost returns the [structure points, mobile points] price. Missing costs are 0.
func (u *UnitInformation) Cost() [2]float64 {
	var c [2]float64
	if u == nil {
		return c
	}
	if u.Cost1 != nil {
		c[0] = *u.Cost1
	}
	if u.Cost2 != nil {
		c[1] = *u.Cost2
	}
	return c
}

// UpgradeCost returns the price of applying the overlay. A cost the overlay
// leaves out falls back to the base cost in that dimension.
func (u *UnitInformation) UpgradeCost() ([2]float64, bool) {
	if u == nil || u.Upgrade == nil {
		return [2]float64{}, false
	}
	c := u.Cost()
	if u.Upgrade.Cost1 != nil {
		c[0] = *u.Upgrade.Cost1
	}
	if u.Upgrade.Cost2 != nil {
		c[1] = *u.Upgrade.Cost2
	}
	return c, true
}

type Debug struct {
	PrintMapString           bool `json:"printMapString"`
	PrintTStrings            bool `json:"printTStrings"`
	PrintActStrings          bool `json:"printActStrings"`
	PrintHitStrings          bool `json:"printHitStrings"`
	PrintPlayerInputStrings  bool `json:"printPlayerInputStrings"`
	PrintBotErrors           bool `json:"printBotErrors"`
	PrintPlayerGetHitStrings bool `json:"printPlayerGetHitStrings"`
}

// Resources holds the economy constants. Bits are mobile points (MP), cores
// are structure points (SP).
type Resources struct {
	TurnIntervalForBitCapSchedule float64 `json:"turnIntervalForBitCapSchedule"`
	TurnIntervalForBitSchedule    float64 `json:"turnIntervalForBitSchedule"`
	BitRampBitCapGrowthRate       float64 `json:"bitRampBitCapGrowthRate"`
	RoundStartBitRamp             float64 `json:"roundStartBitRamp"`
	BitGrowthRate                 float64 `json:"bitGrowthRate"`
	StartingHP                    float64 `json:"startingHP"`
	MaxBits                       float64 `json:"maxBits"`
	BitsPerRound                  float64 `json:"bitsPerRound"`
	CoresPerRound                 float64 `json:"coresPerRound"`
	CoresForPlayerDamage          float64 `json:"coresForPlayerDamage"`
	StartingBits                  float64 `json:"startingBits"`
	BitDecayPerRound              float64 `json:"bitDecayPerRound"`
	StartingCores                 float64 `json:"startingCores"`
}

type Mechanics struct {
	BasePlayerHealthDamage    float64 `json:"basePlayerHealthDamage"`
	DamageGrowthBasedOnY      float64 `json:"damageGrowthBasedOnY"`
	BitsCanStackOnDeployment  bool    `json:"bitsCanStackOnDeployment"`
	DestroyOwnUnitRefund      float64 `json:"destroyOwnUnitRefund"`
	DestroyOwnUnitsEnabled    bool    `json:"destroyOwnUnitsEnabled"`
	StepsRequiredSelfDestruct int     `json:"stepsRequiredSelfDestruct"`
	SelfDestructRadius        float64 `json:"selfDestructRadius"`
	ShieldDecayPerFrame       float64 `json:"shieldDecayPerFrame"`
	MeleeMultiplier           float64 `json:"meleeMultiplier"`
	DestroyOwnUnitDelay       float64 `json:"destroyOwnUnitDelay"`
	RerouteMidRound           bool    `json:"rerouteMidRound"`
	StructureBuildTime        float64 `json:"structureBuildTime"`
}

// Config is the game configuration sent by the engine before the first frame.
// UnitInformation is indexed by UnitType.
type Config struct {
	Debug           Debug             `json:"debug"`
	UnitInformation []UnitInformation `json:"unitInformation"`
	Resources       Resources         `json:"resources"`
	Mechanics       Mechanics         `json:"mechanics"`
}

var ErrShortCatalog = errors.New("config unit catalog is incomplete")

// Validate checks that every unit type has a catalog entry.
func (c *Config) Validate() error {
	if len(c.UnitInformation) < NumUnitTypes {
		return fmt.Errorf("%w: have %d entries, want %d", ErrShortCatalog, len(c.UnitInformation), NumUnitTypes)
	}
	return nil
}

// Info returns the catalog sheet for t, or nil if the catalog has no entry.
// The returned sheet belongs to the config and must not be modified.
func (c *Config) Info(t UnitType) *UnitInformation {
	if !t.Valid() || int(t) >= len(c.UnitInformation) {
		return nil
	}
	return &c.UnitInformation[t]
}

// category resolves the engine category of t. The config value wins when it
// is present; otherwise the fixed kind of the type decides.
func (c *Config) category(t UnitType) (int, bool) {
	if info := c.Info(t); info != nil && info.UnitCategory != nil {
		return *info.UnitCategory, true
	}
	switch t.Kind() {
	case KindStructure:
		return CategoryStructure, true
	case KindMobile:
		return CategoryMobile, true
	}
	return 0, false
}

func (c *Config) IsStructure(t UnitType) bool {
	cat, ok := c.category(t)
	return ok && cat == CategoryStructure
}

func (c *Config) IsMobile(t UnitType) bool {
	cat, ok := c.category(t)
	return ok && cat == CategoryMobile
}

// Shorthand returns the wire name of t, e.g. "WL" for walls.
func (c *Config) Shorthand(t UnitType) string {
	if info := c.Info(t); info != nil && info.Shorthand != nil {
		return *info.Shorthand
	}
	return ""
}

// UnitTypeFromShorthand is the inverse of Shorthand. Matching ignores case.
func (c *Config) UnitTypeFromShorthand(s string) (UnitType, bool) {
	for i := range c.UnitInformation {
		if i >= NumUnitTypes {
			break
		}
		sh := c.UnitInformation[i].Shorthand
		if sh != nil && strings.EqualFold(*sh, s) {
			return UnitType(i), true
		}
	}
	return 0, false
}
