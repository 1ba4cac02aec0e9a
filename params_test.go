package starframe

import (
	"strings"
	"testing"
)

func TestLoadParamsOverridesOnlyGivenFields(t *testing.T) {
	yaml := "substeps: 4\nworkers: 3\n"
	p, err := LoadParams(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	def := DefaultParams()

	if p.Substeps != 4 {
		t.Fatalf("expected substeps override to apply, got %d", p.Substeps)
	}
	if p.Workers != 3 {
		t.Fatalf("expected workers override to apply, got %d", p.Workers)
	}
	if p.Gravity != def.Gravity {
		t.Fatalf("expected gravity to keep its default, got %v", p.Gravity)
	}
	if p.SleepTime != def.SleepTime {
		t.Fatalf("expected sleep_time to keep its default, got %v", p.SleepTime)
	}
}

func TestLoadParamsEmptyDocumentIsAllDefaults(t *testing.T) {
	p, err := LoadParams(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if p != DefaultParams() {
		t.Fatalf("expected an empty document to produce the defaults, got %+v", p)
	}
}
