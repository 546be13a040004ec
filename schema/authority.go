package schema

import "fmt"

var ActivePermission Name = "active"

type PermissionLevel struct {
	Actor      Name `json:"actor"`
	Permission Name `json:"permission"`
}

func (p PermissionLevel) Validate() error {
	if err := p.Actor.Validate(); err != nil {
		return err
	}
	return p.Permission.Validate()
}

func (p PermissionLevel) String() string {
	return string(p.Actor) + "@" + string(p.Permission)
}

func ActiveLevel(actor Name) PermissionLevel {
	return PermissionLevel{Actor: actor, Permission: ActivePermission}
}

type KeyWeight struct {
	Key    string `json:"key"`
	Weight uint16 `json:"weight"`
}

type PermissionLevelWeight struct {
	Permission PermissionLevel `json:"permission"`
	Weight     uint16          `json:"weight"`
}

type WaitWeight struct {
	WaitSec uint32 `json:"wait_sec"`
	Weight  uint16 `json:"weight"`
}

// Authority is the owner or active permission set handed to account creation.
type Authority struct {
	Threshold uint32                  `json:"threshold"`
	Keys      []KeyWeight             `json:"keys"`
	Accounts  []PermissionLevelWeight `json:"accounts"`
	Waits     []WaitWeight            `json:"waits"`
}

// Validate checks the authority can ever be satisfied.
func (a Authority) Validate() error {
	if a.Threshold == 0 {
		return fmt.Errorf("%w: authority threshold must be positive", ErrInvalidArgument)
	}
	var total uint64
	for _, k := range a.Keys {
		if k.Key == "" {
			return fmt.Errorf("%w: empty authority key", ErrInvalidArgument)
		}
		total += uint64(k.Weight)
	}
	for _, acc := range a.Accounts {
		if err := acc.Permission.Validate(); err != nil {
			return err
		}
		total += uint64(acc.Weight)
	}
	for _, w := range a.Waits {
		total += uint64(w.Weight)
	}
	if total < uint64(a.Threshold) {
		return fmt.Errorf("%w: authority weights %d below threshold %d", ErrInvalidArgument, total, a.Threshold)
	}
	return nil
}

func KeyAuthority(key string) Authority {
	return Authority{
		Threshold: 1,
		Keys:      []KeyWeight{{Key: key, Weight: 1}},
		Accounts:  []PermissionLevelWeight{},
		Waits:     []WaitWeight{},
	}
}
