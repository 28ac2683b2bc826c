package main

import (
	"os"
	"regexp"
	"strings"
	"testing"
)

// hostEntryPoints is the export table the host resolves by name
var hostEntryPoints = []string{
	"SmartieInit",
	"SmartieFini",
	"SmartieInfo",
	"SmartieDemo",
	"GetMinRefreshInterval",
	"function1",
	"function2",
	"function3",
	"function4",
	"function5",
	"function6",
	"function7",
}

// TestEntryPoints_UseHostCallingConvention checks that every entry point is
// defined in C with the host's calling convention and forwards to its Go
// implementation.
func TestEntryPoints_UseHostCallingConvention(t *testing.T) {
	src, err := os.ReadFile("exports.c")
	if err != nil {
		t.Fatalf("Failed to read exports.c: %v", err)
	}
	text := string(src)

	if !strings.Contains(text, "#define SMARTIE_CALL __stdcall") {
		t.Error("32-bit Windows builds should define entry points as stdcall")
	}

	for _, name := range hostEntryPoints {
		t.Run(name, func(t *testing.T) {
			goName := "go" + strings.ToUpper(name[:1]) + name[1:]
			pattern := regexp.MustCompile(
				`SMARTIE_EXPORT \S+ SMARTIE_CALL ` + name + `\([^)]*\) \{ (return )?` + goName + `\(`)
			if !pattern.MatchString(text) {
				t.Errorf("%s is not exported as a stdcall wrapper around %s", name, goName)
			}
		})
	}
}

func TestGoExports_DoNotClaimHostNames(t *testing.T) {
	src, err := os.ReadFile("main.go")
	if err != nil {
		t.Fatalf("Failed to read main.go: %v", err)
	}

	for _, name := range hostEntryPoints {
		if strings.Contains(string(src), "//export "+name+"\n") {
			t.Errorf("%s is exported from Go with the C default calling convention", name)
		}
	}
}
