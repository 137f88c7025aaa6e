package config

import (
	"fmt"

	"cuelang.org/go/cue/cuecontext"
)

// ruleSchema constrains a single rule configuration. Severities follow the
// LSP diagnostic severity names.
const ruleSchema = `
severity: "error" | "warning" | "information" | "hint"
options?: {...}
`

// validateRules checks every rule configuration against the CUE schema.
func validateRules(rules map[string]RuleConfig) error {
	if len(rules) == 0 {
		return nil
	}

	cctx := cuecontext.New()
	schema := cctx.CompileString(ruleSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling rule schema: %w", err)
	}

	for id, rc := range rules {
		value := schema.Unify(cctx.Encode(rc))
		if err := value.Validate(); err != nil {
			return fmt.Errorf("rule %q: %w", id, err)
		}
	}
	return nil
}
