package ui

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/chaz8081/claude-forge/internal/registry"
)

func validBridge() Bridge {
	return Bridge{
		ListFunc: func(kind registry.Kind) ([]Row, error) {
			return []Row{{Name: "zeta"}, {Name: "alpha", Installed: true}}, nil
		},
		PreviewFunc: func(kind registry.Kind, name string) (string, error) { return name, nil },
		InstallFunc: func(kind registry.Kind, name string, force bool) (string, error) { return name, nil },
	}
}

func TestBridge_Validate(t *testing.T) {
	if err := validBridge().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	b := validBridge()
	b.InstallFunc = nil
	if err := b.Validate(); err == nil || !strings.Contains(err.Error(), "InstallFunc") {
		t.Fatalf("expected missing InstallFunc error, got %v", err)
	}
}

func TestBridge_ListSortsRows(t *testing.T) {
	rows, err := validBridge().List(registry.KindAgent)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	got := []string{rows[0].Name, rows[1].Name}
	if !reflect.DeepEqual(got, []string{"alpha", "zeta"}) {
		t.Fatalf("expected sorted rows, got %v", got)
	}
}

func TestBridge_RejectsUnnamedKinds(t *testing.T) {
	b := validBridge()
	for _, kind := range []registry.Kind{registry.KindMemory, registry.KindIgnore, "skills"} {
		if _, err := b.List(kind); err == nil {
			t.Fatalf("expected List(%q) to fail", kind)
		}
		if _, err := b.Preview(kind, "x"); err == nil {
			t.Fatalf("expected Preview(%q) to fail", kind)
		}
		if _, err := b.Install(kind, "x", false); err == nil {
			t.Fatalf("expected Install(%q) to fail", kind)
		}
	}
}

func TestBridge_RequiresName(t *testing.T) {
	b := validBridge()
	if _, err := b.Preview(registry.KindHook, ""); err == nil {
		t.Fatal("expected empty preview name to fail")
	}
	if _, err := b.Install(registry.KindHook, "", false); err == nil {
		t.Fatal("expected empty install name to fail")
	}
}

func TestBridge_ForwardsErrors(t *testing.T) {
	boom := errors.New("boom")
	b := validBridge()
	b.ListFunc = func(registry.Kind) ([]Row, error) { return nil, boom }
	b.InstallFunc = func(registry.Kind, string, bool) (string, error) { return "", ErrAlreadyInstalled }

	if _, err := b.List(registry.KindCommand); !errors.Is(err, boom) {
		t.Fatalf("expected list error forwarded, got %v", err)
	}
	if _, err := b.Install(registry.KindCommand, "analyze", false); !errors.Is(err, ErrAlreadyInstalled) {
		t.Fatalf("expected ErrAlreadyInstalled, got %v", err)
	}
}
