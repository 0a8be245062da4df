package main

import (
	"fmt"

	"github.com/zincware/zninit"
	"github.com/zincware/zninit/internal/cli/config"
)

// runCheck constructs the check's model with its keyword arguments and
// returns the instance representation.
func runCheck(check config.Check) (string, error) {
	cls, ok := zninit.Lookup(check.Model)
	if !ok {
		return "", fmt.Errorf("model %s is not registered", check.Model)
	}
	inst, err := cls.New(zninit.Kwargs(check.Kwargs))
	if err != nil {
		return "", err
	}
	return inst.String(), nil
}
