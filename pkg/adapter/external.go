// Package adapter translates between tasks of an external todo service and
// the internal model.Task.
package adapter

import "fmt"

// ExternalTask is the record format of the external service. It shares no
// field names with model.Task: ids are strings, urgency runs from 1 to 5 and
// the due date is an ISO-8601 string.
type ExternalTask struct {
	ItemID      string  `json:"item_id" yaml:"item_id"`
	Name        string  `json:"name" yaml:"name"`
	IsCompleted bool    `json:"is_completed" yaml:"is_completed"`
	Due         *string `json:"due" yaml:"due"`
	Urgency     int     `json:"urgency" yaml:"urgency"`
	Label       *string `json:"label" yaml:"label"`
}

// DefaultUrgency is the urgency the external service assigns when none is given
const DefaultUrgency = 3

const firstExternalID = 1000

// ExternalService simulates the third-party API handing out ExternalTasks
type ExternalService struct {
	items  []ExternalTask
	nextID int
}

func NewExternalService() *ExternalService {
	return &ExternalService{nextID: firstExternalID}
}

// CreateItem registers a new, open item with the next EXT-n id
func (s *ExternalService) CreateItem(name string, urgency int, label, due *string) ExternalTask {
	if s.nextID < firstExternalID {
		s.nextID = firstExternalID
	}
	item := ExternalTask{
		ItemID:  fmt.Sprintf("EXT-%d", s.nextID),
		Name:    name,
		Due:     due,
		Urgency: urgency,
		Label:   label,
	}
	s.items = append(s.items, item)
	s.nextID++
	return item
}

// FetchAll returns a copy of every item created so far
func (s *ExternalService) FetchAll() []ExternalTask {
	out := make([]ExternalTask, len(s.items))
	copy(out, s.items)
	return out
}
