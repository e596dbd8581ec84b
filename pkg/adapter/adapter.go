package adapter

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"todomvc/pkg/model"
	"todomvc/pkg/utils"
)

// DefaultIDOffset keeps adapted ids clear of the ids a fresh session hands out
const DefaultIDOffset = 10000

// hashedIDSpace bounds the ids derived from unparseable external ids.
// Distinct external ids may collide inside it.
const hashedIDSpace = 100000

// externalDateLayout is what ToExternal writes for due dates
const externalDateLayout = "2006-01-02T15:04:05"

var dueDateLayouts = []string{
	time.RFC3339,
	externalDateLayout,
	"2006-01-02",
}

var urgencyToPriority = map[int]model.Priority{
	1: model.PriorityLow,
	2: model.PriorityLow,
	3: model.PriorityMedium,
	4: model.PriorityHigh,
	5: model.PriorityHigh,
}

var priorityToUrgency = map[model.Priority]int{
	model.PriorityLow:    2,
	model.PriorityMedium: 3,
	model.PriorityHigh:   4,
}

// Option configures a TaskAdapter
type Option func(*TaskAdapter)

// WithIDOffset sets the value added to every converted id
func WithIDOffset(offset int) Option {
	return func(a *TaskAdapter) { a.idOffset = offset }
}

// TaskAdapter converts ExternalTasks into model.Tasks. It holds no state
// besides its configuration and never fails: bad input maps to fallbacks.
type TaskAdapter struct {
	idOffset int
}

func NewTaskAdapter(opts ...Option) *TaskAdapter {
	a := &TaskAdapter{idOffset: DefaultIDOffset}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// IDOffset returns the configured id offset
func (a *TaskAdapter) IDOffset() int {
	return a.idOffset
}

// ConvertID maps "EXT-1000" to 1000+offset. Ids without a dash or with a
// non-numeric suffix are hashed into [offset, offset+100000).
func (a *TaskAdapter) ConvertID(externalID string) int {
	if i := strings.LastIndex(externalID, "-"); i >= 0 {
		if n, err := strconv.Atoi(externalID[i+1:]); err == nil {
			return n + a.idOffset
		}
	}
	id := hashID(externalID) + a.idOffset
	utils.Log("external id hashed", "external_id", externalID, "id", id)
	return id
}

func hashID(s string) int {
	sum := blake3.Sum256([]byte(s))
	return int(binary.BigEndian.Uint64(sum[:8]) % hashedIDSpace)
}

// ConvertUrgency maps urgency 1..5 to a priority; anything else is Mittel
func (a *TaskAdapter) ConvertUrgency(urgency int) model.Priority {
	if p, ok := urgencyToPriority[urgency]; ok {
		return p
	}
	return model.PriorityMedium
}

// ConvertDueDate keeps the date part of an ISO-8601 string. Missing or
// unparseable input yields the zero time.
func (a *TaskAdapter) ConvertDueDate(due *string) time.Time {
	if due == nil {
		return time.Time{}
	}
	s := strings.TrimSpace(*due)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.DateOf(t)
		}
	}
	utils.Log("external due date ignored", "due", s)
	return time.Time{}
}

func (a *TaskAdapter) Adapt(ext ExternalTask) model.Task {
	task := model.Task{
		ID:       a.ConvertID(ext.ItemID),
		Title:    ext.Name,
		Done:     ext.IsCompleted,
		DueDate:  a.ConvertDueDate(ext.Due),
		Priority: a.ConvertUrgency(ext.Urgency),
	}
	if ext.Label != nil {
		task.Category = *ext.Label
	}
	return task
}

// AdaptMany adapts every item, keeping their order
func (a *TaskAdapter) AdaptMany(items []ExternalTask) []model.Task {
	tasks := make([]model.Task, 0, len(items))
	for _, ext := range items {
		tasks = append(tasks, a.Adapt(ext))
	}
	return tasks
}

// BidirectionalTaskAdapter also converts internal tasks back to the
// external format. A round trip is lossy: urgency 1 and 5 come back as 2
// and 4, and the clock part of a due date is gone.
type BidirectionalTaskAdapter struct {
	*TaskAdapter
}

func NewBidirectionalTaskAdapter(opts ...Option) *BidirectionalTaskAdapter {
	return &BidirectionalTaskAdapter{TaskAdapter: NewTaskAdapter(opts...)}
}

// ConvertPriority maps a priority to an urgency; no priority means 3
func (a *BidirectionalTaskAdapter) ConvertPriority(p model.Priority) int {
	if u, ok := priorityToUrgency[p]; ok {
		return u
	}
	return DefaultUrgency
}

// ToExternal converts task. An empty externalID becomes "EXT-<task id>".
func (a *BidirectionalTaskAdapter) ToExternal(task model.Task, externalID string) ExternalTask {
	if externalID == "" {
		externalID = fmt.Sprintf("EXT-%d", task.ID)
	}
	ext := ExternalTask{
		ItemID:      externalID,
		Name:        task.Title,
		IsCompleted: task.Done,
		Urgency:     a.ConvertPriority(task.Priority),
	}
	if task.HasDueDate() {
		due := model.DateOf(task.DueDate).Format(externalDateLayout)
		ext.Due = &due
	}
	if task.HasCategory() {
		label := task.Category
		ext.Label = &label
	}
	return ext
}

// ToExternalMany converts every task with a generated id
func (a *BidirectionalTaskAdapter) ToExternalMany(tasks []model.Task) []ExternalTask {
	items := make([]ExternalTask, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, a.ToExternal(t, ""))
	}
	return items
}
