package config

import "testing"

func TestNormalizeEnv(t *testing.T) {
	cases := map[string]string{
		"dev":         "development",
		"DEVELOPMENT": "development",
		"local":       "development",
		"prod":        "production",
		" Staging ":   "staging",
		"testing":     "test",
		"custom":      "custom",
	}

	for input, expected := range cases {
		if got := normalizeEnv(input); got != expected {
			t.Errorf("normalizeEnv(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_FLAG", "yes")
	if !getEnvBool("TEST_FLAG", false) {
		t.Error("expected yes to parse as true")
	}

	t.Setenv("TEST_FLAG", "off")
	if getEnvBool("TEST_FLAG", true) {
		t.Error("expected off to parse as false")
	}

	t.Setenv("TEST_FLAG", "maybe")
	if !getEnvBool("TEST_FLAG", true) {
		t.Error("unparseable values fall back to the default")
	}

	if getEnvBool("TEST_FLAG_UNSET", false) {
		t.Error("missing values fall back to the default")
	}
}

func TestDocsEnabled(t *testing.T) {
	cases := []struct {
		cfg      *Config
		expected bool
	}{
		{&Config{AppEnv: "development", EnableDocs: true}, true},
		{&Config{AppEnv: "development", EnableDocs: false}, false},
		{&Config{AppEnv: "production", EnableDocs: true}, false},
		{nil, false},
	}

	for _, c := range cases {
		if got := c.cfg.DocsEnabled(); got != c.expected {
			t.Errorf("DocsEnabled() on %+v = %v, expected %v", c.cfg, got, c.expected)
		}
	}
}
