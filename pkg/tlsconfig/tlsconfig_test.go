package tlsconfig

import (
	"crypto/tls"
	"testing"
)

func TestVersionName(t *testing.T) {
	cases := []struct {
		version uint16
		want    string
	}{
		{VersionTLS10, "TLS 1.0"},
		{VersionTLS11, "TLS 1.1"},
		{VersionTLS12, "TLS 1.2"},
		{VersionTLS13, "TLS 1.3"},
		{0x9999, "Unknown"},
	}
	for _, tc := range cases {
		if got := VersionName(tc.version); got != tc.want {
			t.Errorf("VersionName(%#x) = %q, want %q", tc.version, got, tc.want)
		}
	}
}

func TestIsVersionDeprecated(t *testing.T) {
	if !IsVersionDeprecated(VersionTLS10) || !IsVersionDeprecated(VersionTLS11) {
		t.Error("TLS 1.0/1.1 must be deprecated")
	}
	if IsVersionDeprecated(VersionTLS12) || IsVersionDeprecated(VersionTLS13) {
		t.Error("TLS 1.2/1.3 must not be deprecated")
	}
}

func TestApplyProfile(t *testing.T) {
	var cfg tls.Config
	ApplyProfile(&cfg, ProfileSecure)
	if cfg.MinVersion != VersionTLS12 || cfg.MaxVersion != VersionTLS13 {
		t.Errorf("secure profile applied min=%#x max=%#x", cfg.MinVersion, cfg.MaxVersion)
	}

	ApplyProfile(&cfg, ProfileModern)
	if cfg.MinVersion != VersionTLS13 {
		t.Errorf("modern profile applied min=%#x", cfg.MinVersion)
	}
}

func TestApplyCipherSuites(t *testing.T) {
	var cfg tls.Config

	ApplyCipherSuites(&cfg, VersionTLS13)
	if cfg.CipherSuites != nil {
		t.Error("TLS 1.3 selects its own suites, list must be nil")
	}

	ApplyCipherSuites(&cfg, VersionTLS12)
	if len(cfg.CipherSuites) == 0 {
		t.Error("TLS 1.2 must get the secure suite list")
	}

	ApplyCipherSuites(&cfg, VersionTLS10)
	if len(cfg.CipherSuites) <= len(CipherSuitesTLS12Secure) {
		t.Error("compatible list must be the larger one")
	}
}
