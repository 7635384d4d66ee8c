package behaviour

import (
	"testing"

	"Tekka/internal/renderer"
)

func withRegistry(t *testing.T) {
	saved := scriptRegistry
	scriptRegistry = make(map[string]ScriptConstructor)
	t.Cleanup(func() { scriptRegistry = saved })
}

func mockConstructor(*renderer.Transform, Params) Behaviour { return &MockBehaviour{} }

func TestRegisterScript(t *testing.T) {
	withRegistry(t)

	RegisterScript("TestScript", mockConstructor)

	scripts := GetAvailableScripts()

	if len(scripts) != 1 {
		t.Errorf("Expected 1 script, got %d", len(scripts))
	}

	if scripts[0] != "TestScript" {
		t.Errorf("Expected 'TestScript', got '%s'", scripts[0])
	}
}

func TestCreateScript(t *testing.T) {
	withRegistry(t)

	RegisterScript("TestScript", mockConstructor)

	tr := renderer.NewTransform()
	b, err := CreateScript("TestScript", &tr, Params{})

	if err != nil || b == nil {
		t.Errorf("CreateScript failed: %v", err)
	}
}

func TestCreateScriptNotFound(t *testing.T) {
	withRegistry(t)

	tr := renderer.NewTransform()
	b, err := CreateScript("NonExistent", &tr, Params{})

	if err == nil || b != nil {
		t.Error("CreateScript should fail for non-existent script")
	}
}

func TestGetAvailableScriptsSorted(t *testing.T) {
	withRegistry(t)

	RegisterScript("Zebra", mockConstructor)
	RegisterScript("Alpha", mockConstructor)
	RegisterScript("Middle", mockConstructor)

	scripts := GetAvailableScripts()

	if len(scripts) != 3 {
		t.Fatalf("Expected 3 scripts, got %d", len(scripts))
	}

	if scripts[0] != "Alpha" {
		t.Errorf("Expected first script 'Alpha', got '%s'", scripts[0])
	}
	if scripts[1] != "Middle" {
		t.Errorf("Expected second script 'Middle', got '%s'", scripts[1])
	}
	if scripts[2] != "Zebra" {
		t.Errorf("Expected third script 'Zebra', got '%s'", scripts[2])
	}
}

func TestBuiltinScriptsRegistered(t *testing.T) {
	scripts := GetAvailableScripts()

	expected := []string{"bounce", "orbit", "spin", "wander"}
	for _, name := range expected {
		found := false
		for _, s := range scripts {
			if s == name {
				found = true
			}
		}
		if !found {
			t.Errorf("Built-in script %q is not registered", name)
		}
	}
}
