package behaviour

import (
	"testing"
)

type MockBehaviour struct {
	startCount  int
	updateCount int
	fixedCount  int
	lastDelta   float32
	log         *[]string
	name        string
}

func (m *MockBehaviour) Start() {
	m.startCount++
	if m.log != nil {
		*m.log = append(*m.log, m.name+".start")
	}
}

func (m *MockBehaviour) Update(deltaTime float32) {
	m.updateCount++
	m.lastDelta = deltaTime
	if m.log != nil {
		*m.log = append(*m.log, m.name+".update")
	}
}

func (m *MockBehaviour) UpdateFixed() { m.fixedCount++ }

func TestBehaviourManagerStartsOnce(t *testing.T) {
	m := NewBehaviourManager()
	b := &MockBehaviour{}
	m.Add(b)

	m.UpdateAll(0.016)
	m.UpdateAll(0.016)
	m.UpdateAllFixed()

	if b.startCount != 1 {
		t.Errorf("Start should run once, ran %d times", b.startCount)
	}
	if b.updateCount != 2 {
		t.Errorf("Expected 2 updates, got %d", b.updateCount)
	}
	if b.fixedCount != 1 {
		t.Errorf("Expected 1 fixed update, got %d", b.fixedCount)
	}
	if b.lastDelta != 0.016 {
		t.Errorf("Expected delta 0.016, got %f", b.lastDelta)
	}
}

func TestBehaviourManagerFixedStarts(t *testing.T) {
	m := NewBehaviourManager()
	b := &MockBehaviour{}
	m.Add(b)

	m.UpdateAllFixed()

	if b.startCount != 1 {
		t.Error("UpdateAllFixed should start a new behaviour")
	}
}

func TestBehaviourManagerOrder(t *testing.T) {
	var log []string
	m := NewBehaviourManager()
	a := &MockBehaviour{name: "a", log: &log}
	b := &MockBehaviour{name: "b", log: &log}
	c := &MockBehaviour{name: "c", log: &log}
	m.Add(a)
	m.Add(b)
	m.Add(c)
	m.Remove(a)

	m.UpdateAll(1)

	expected := []string{"b.start", "b.update", "c.start", "c.update"}
	if len(log) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, log)
	}
	for i := range expected {
		if log[i] != expected[i] {
			t.Errorf("Step %d: expected %s, got %s", i, expected[i], log[i])
		}
	}
}

func TestBehaviourManagerClear(t *testing.T) {
	m := NewBehaviourManager()
	b := &MockBehaviour{}
	m.Add(b)

	m.Clear()
	m.UpdateAll(1)

	if m.Len() != 0 {
		t.Errorf("Expected empty manager, got %d", m.Len())
	}
	if b.updateCount != 0 {
		t.Error("Cleared behaviour should not update")
	}
}
