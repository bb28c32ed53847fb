package provider

import (
	"errors"
	"fmt"
)

// Kind names a concrete provider implementation for configuration.
type Kind int

const (
	YAMLKind Kind = iota
	DotenvKind
	SQLiteKind
)

var ErrBadKind = errors.New("bad provider kind")

func ParseKind(v string) (Kind, error) {
	k, ok := map[string]Kind{
		"y":      YAMLKind,
		"yaml":   YAMLKind,
		"env":    DotenvKind,
		"dotenv": DotenvKind,
		"db":     SQLiteKind,
		"sqlite": SQLiteKind,
	}[v]
	if ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadKind, v)
}

func (k Kind) String() string {
	d, err := k.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case YAMLKind:
		return []byte("yaml"), nil
	case DotenvKind:
		return []byte("env"), nil
	case SQLiteKind:
		return []byte("sqlite"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a kind>", k)
	}
}

func (k *Kind) UnmarshalText(d []byte) error {
	pk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = pk
	return nil
}
