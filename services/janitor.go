package services

import (
	"time"

	"github.com/yeremiapane/foodcourt/utils"
)

// Janitor runs housekeeping tasks (expired in-memory sessions, revoked
// tokens) on a ticker until stopped.
type Janitor struct {
	Interval time.Duration
	StopChan chan struct{}
	tasks    map[string]func() int
}

func NewJanitor() *Janitor {
	return &Janitor{
		Interval: 10 * time.Minute,
		StopChan: make(chan struct{}),
		tasks:    make(map[string]func() int),
	}
}

// Add registers a task. It returns how many entries it removed.
func (j *Janitor) Add(name string, task func() int) {
	j.tasks[name] = task
}

func (j *Janitor) Start() {
	go func() {
		ticker := time.NewTicker(j.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.RunOnce()
			case <-j.StopChan:
				return
			}
		}
	}()
}

func (j *Janitor) Stop() {
	close(j.StopChan)
}

func (j *Janitor) RunOnce() {
	for name, task := range j.tasks {
		if n := task(); n > 0 {
			utils.InfoLogger.Printf("janitor: %s removed %d entries", name, n)
		}
	}
}
