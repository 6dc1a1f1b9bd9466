package game

import "encoding/json"

// Events lists what happened during an action frame. Every record is a
// positional tuple on the wire.
type Events struct {
	Attack       []AttackEvent       `json:"attack"`
	Breach       []BreachEvent       `json:"breach"`
	Damage       []DamageEvent       `json:"damage"`
	Death        []DeathEvent        `json:"death"`
	Melee        []MeleeEvent        `json:"melee"`
	Move         []MoveEvent         `json:"move"`
	SelfDestruct []SelfDestructEvent `json:"selfDestruct"`
	Shield       []ShieldEvent       `json:"shield"`
	Spawn        []SpawnEvent        `json:"spawn"`
}

type AttackEvent struct {
	Source       Coords
	Target       Coords
	Damage       float64
	AttackerType UnitType
	SourceID     UnitID
	TargetID     UnitID
	SourcePlayer PlayerID
}

func (e *AttackEvent) fields() []any {
	return []any{&e.Source, &e.Target, &e.Damage, &e.AttackerType, &e.SourceID, &e.TargetID, &e.SourcePlayer}
}
func (e *AttackEvent) UnmarshalJSON(b []byte) error { return decodeTuple(b, e.fields()...) }
func (e AttackEvent) MarshalJSON() ([]byte, error) { return json.Marshal(e.fields()) }

type BreachEvent struct {
	Coords       Coords
	Damage       float64
	BreacherType UnitType
	BreacherID   UnitID
	Owner        PlayerID
}

func (e *BreachEvent) fields() []any {
	return []any{&e.Coords, &e.Damage, &e.BreacherType, &e.BreacherID, &e.Owner}
}
func (e *BreachEvent) UnmarshalJSON(b []byte) error { return decodeTuple(b, e.fields()...) }
func (e BreachEvent) MarshalJSON() ([]byte, error) { return json.Marshal(e.fields()) }

type DamageEvent struct {
	Coords      Coords
	Damage      float64
	DamagerType UnitType
	DamagerID   UnitID
	Owner       PlayerID
}

func (e *DamageEvent) fields() []any {
	return []any{&e.Coords, &e.Damage, &e.DamagerType, &e.DamagerID, &e.Owner}
}
func (e *DamageEvent) UnmarshalJSON(b []byte) error { return decodeTuple(b, e.fields()...) }
func (e DamageEvent) MarshalJSON() ([]byte, error) { return json.Marshal(e.fields()) }

type DeathEvent struct {
	Coords        Coords
	DestroyedType UnitType
	DestroyedID   UnitID
	Owner         PlayerID
	SelfRemoval   bool
}

func (e *DeathEvent) fields() []any {
	return []any{&e.Coords, &e.DestroyedType, &e.DestroyedID, &e.Owner, &e.SelfRemoval}
}
func (e *DeathEvent) UnmarshalJSON(b []byte) error { return decodeTuple(b, e.fields()...) }
func (e DeathEvent) MarshalJSON() ([]byte, error) { return json.Marshal(e.fields()) }

type MeleeEvent struct {
	AttackerCoords Coords
	TargetCoords   Coords
	Damage         float64
	AttackerType   UnitType
	AttackerID     UnitID
	AttackerPlayer PlayerID
}

func (e *MeleeEvent) fields() []any {
	return []any{&e.AttackerCoords, &e.TargetCoords, &e.Damage, &e.AttackerType, &e.AttackerID, &e.AttackerPlayer}
}
func (e *MeleeEvent) UnmarshalJSON(b []byte) error { return decodeTuple(b, e.fields()...) }
func (e MeleeEvent) MarshalJSON() ([]byte, error) { return json.Marshal(e.fields()) }

type MoveEvent struct {
	From     Coords
	To       Coords
	Intended Coords
	UnitType UnitType
	ID       UnitID
	Owner    PlayerID
}

func (e *MoveEvent) fields() []any {
	return []any{&e.From, &e.To, &e.Intended, &e.UnitType, &e.ID, &e.Owner}
}
func (e *MoveEvent) UnmarshalJSON(b []byte) error { return decodeTuple(b, e.fields()...) }
func (e MoveEvent) MarshalJSON() ([]byte, error) { return json.Marshal(e.fields()) }

type SelfDestructEvent struct {
	Source   Coords
	Targets  []Coords
	Damage   float64
	UnitType UnitType
	ID       UnitID
	Owner    PlayerID
}

func (e *SelfDestructEvent) fields() []any {
	return []any{&e.Source, &e.Targets, &e.Damage, &e.UnitType, &e.ID, &e.Owner}
}
func (e *SelfDestructEvent) UnmarshalJSON(b []byte) error { return decodeTuple(b, e.fields()...) }
func (e SelfDestructEvent) MarshalJSON() ([]byte, error) { return json.Marshal(e.fields()) }

type ShieldEvent struct {
	SupportCoords Coords
	MobileCoords  Coords
	Amount        float64
	SupportType   UnitType
	SupportID     UnitID
	MobileID      UnitID
	Owner         PlayerID
}

func (e *ShieldEvent) fields() []any {
	return []any{&e.SupportCoords, &e.MobileCoords, &e.Amount, &e.SupportType, &e.SupportID, &e.MobileID, &e.Owner}
}
func (e *ShieldEvent) UnmarshalJSON(b []byte) error { return decodeTuple(b, e.fields()...) }
func (e ShieldEvent) MarshalJSON() ([]byte, error) { return json.Marshal(e.fields()) }

type SpawnEvent struct {
	Coords   Coords
	UnitType UnitType
	ID       UnitID
	Owner    PlayerID
}

func (e *SpawnEvent) fields() []any {
	return []any{&e.Coords, &e.UnitType, &e.ID, &e.Owner}
}
func (e *SpawnEvent) UnmarshalJSON(b []byte) error { return decodeTuple(b, e.fields()...) }
func (e SpawnEvent) MarshalJSON() ([]byte, error) { return json.Marshal(e.fields()) }
