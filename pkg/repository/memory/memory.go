package memory

import (
	"github.com/clover4media/razl/pkg/domain/interfaces"
)

// Memory is the in-process repository. The process owns all state; nothing
// survives a restart.
type Memory struct {
	agenda *agendaRepository
	todo   *todoRepository
}

var _ interfaces.Repository = &Memory{}

// New creates an empty in-memory repository
func New() *Memory {
	return &Memory{
		agenda: newAgendaRepository(),
		todo:   newTodoRepository(),
	}
}

func (m *Memory) Agenda() interfaces.AgendaRepository {
	return m.agenda
}

func (m *Memory) Todo() interfaces.TodoRepository {
	return m.todo
}

func (m *Memory) Close() error {
	return nil
}
