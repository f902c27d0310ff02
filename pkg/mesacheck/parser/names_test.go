package parser

import "testing"

func TestFormatName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DA SILVA joão", "da Silva João"},
		{"maria de souza", "Maria de Souza"},
		{"", ""},
		{"   ", ""},
		{"  ANA   paula  ", "Ana Paula"},
		{"JOSÉ DOS SANTOS E SILVA", "José dos Santos e Silva"},
		{"e", "e"},
		{"ÉRICA das neves", "Érica das Neves"},
		{"d'ávila", "D'ávila"},
		{"joão-pedro", "João-pedro"},
		{"\tluíza\nmendes", "Luíza Mendes"},
		{"123", "123"},
	}

	for _, tt := range tests {
		result := FormatName(tt.input)
		if result != tt.expected {
			t.Errorf("FormatName(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestFormatNameIdempotent(t *testing.T) {
	inputs := []string{
		"DA SILVA joão",
		"maria DE souza",
		"  ",
		"ǆuro",
		"ÇAÇA e ÁGUA",
		"straße",
		"İSTANBUL",
		"o'NEIL mc DONALD",
	}

	for _, in := range inputs {
		once := FormatName(in)
		twice := FormatName(once)
		if once != twice {
			t.Errorf("FormatName not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
