package behaviour

// Behaviour is a per-frame script. Start runs once, before the first
// Update or UpdateFixed.
type Behaviour interface {
	Start()
	Update(deltaTime float32)
	UpdateFixed()
}

type BehaviourWrapper struct {
	Behaviour Behaviour
	started   bool
}

type BehaviourManager struct {
	behaviours []BehaviourWrapper
}

func NewBehaviourManager() *BehaviourManager {
	return &BehaviourManager{}
}

func (m *BehaviourManager) Add(behaviour Behaviour) {
	m.behaviours = append(m.behaviours, BehaviourWrapper{Behaviour: behaviour, started: false})
}

// Remove drops a behaviour, keeping the others in the order they were added.
func (m *BehaviourManager) Remove(behaviour Behaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].Behaviour == behaviour {
			m.behaviours = append(m.behaviours[:i], m.behaviours[i+1:]...)
			return
		}
	}
}

// Clear removes all behaviours from the manager
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
}

func (m *BehaviourManager) Len() int {
	return len(m.behaviours)
}

func (m *BehaviourManager) start(i int) {
	if !m.behaviours[i].started {
		m.behaviours[i].Behaviour.Start()
		m.behaviours[i].started = true
	}
}

func (m *BehaviourManager) UpdateAll(deltaTime float32) {
	for i := range m.behaviours {
		m.start(i)
		m.behaviours[i].Behaviour.Update(deltaTime)
	}
}

func (m *BehaviourManager) UpdateAllFixed() {
	for i := range m.behaviours {
		m.start(i)
		m.behaviours[i].Behaviour.UpdateFixed()
	}
}
