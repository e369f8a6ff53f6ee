package matcher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRuleSet reads a rule table from a YAML (.yaml/.yml) or JSON file and
// applies the default scoring weights. The result still needs Compile.
func LoadRuleSet(path string) (RuleSet, error) {
	var rs RuleSet
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return rs, fmt.Errorf("read ruleset: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rs); err != nil {
			return rs, fmt.Errorf("decode ruleset %s: %w", filepath.Base(path), err)
		}
	default:
		if err := json.Unmarshal(data, &rs); err != nil {
			return rs, fmt.Errorf("decode ruleset %s: %w", filepath.Base(path), err)
		}
	}
	rs.ApplyDefaults()
	return rs, nil
}

// SaveRuleSet writes a rule table, choosing the encoding from the file
// extension. The write goes through a temp file and rename.
func SaveRuleSet(path string, rs RuleSet) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(rs)
	default:
		data, err = json.MarshalIndent(rs, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode ruleset: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ruleset dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp ruleset: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename ruleset: %w", err)
	}
	return nil
}

// Compile validates the rule table and pre-normalizes every keyword and
// synonym. A table that fails here is a startup configuration error; a
// compiled table never fails at query time.
func Compile(rs RuleSet) (*CompiledRules, error) {
	rs.ApplyDefaults()
	if len(rs.Specialties) == 0 {
		return nil, fmt.Errorf("ruleset declares no specialties")
	}
	c := &CompiledRules{
		scoring:  rs.Scoring,
		rules:    make([]compiledRule, 0, len(rs.Specialties)),
		synonyms: buildSynonyms(rs.Synonyms),
	}
	seen := make(map[string]struct{}, len(rs.Specialties))
	for i, sp := range rs.Specialties {
		if strings.TrimSpace(sp.ID) == "" {
			return nil, fmt.Errorf("specialty %d (%q) has an empty id", i, sp.DisplayName)
		}
		if _, ok := seen[sp.ID]; ok {
			return nil, fmt.Errorf("duplicate specialty id %q", sp.ID)
		}
		seen[sp.ID] = struct{}{}
		rule := compiledRule{
			spec:   sp,
			strong: normalizeKeywordList(sp.Strong),
			weak:   normalizeKeywordList(sp.Weak),
		}
		if len(rule.strong) == 0 && len(rule.weak) == 0 {
			return nil, fmt.Errorf("specialty %q has no usable keywords", sp.ID)
		}
		c.rules = append(c.rules, rule)
	}
	if rs.Fallback != "" {
		if _, ok := seen[rs.Fallback]; !ok {
			return nil, fmt.Errorf("fallback specialty %q is not declared", rs.Fallback)
		}
		for i := range c.rules {
			if c.rules[i].spec.ID == rs.Fallback {
				c.fallback = &c.rules[i].spec
				break
			}
		}
	}
	return c, nil
}
