package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestConfigsValidate(t *testing.T) {
	if err := TestConfig().Validate(); err != nil {
		t.Errorf("TestConfig() should validate, got %v", err)
	}
	if err := TestConfigWithInvalidValues().Validate(); err == nil {
		t.Error("TestConfigWithInvalidValues() should not validate")
	}
}

func TestMockAdapter_RecordsPrompts(t *testing.T) {
	m := NewMockAdapter("#000000;night")

	got, err := m.Generate(context.Background(), "night sky")
	if err != nil || got != "#000000;night" {
		t.Errorf("Generate() = %q, %v", got, err)
	}
	if prompts := m.Prompts(); len(prompts) != 1 || prompts[0] != "night sky" {
		t.Errorf("Prompts() = %v", prompts)
	}
}

func TestCaptureOutput(t *testing.T) {
	out := CaptureOutput(t, func() {
		fmt.Println("hello palette")
	})
	if !strings.Contains(out, "hello palette") {
		t.Errorf("CaptureOutput() = %q", out)
	}
}
