package scheduler

import (
	"sync"

	"github.com/Mailcadence/mailcadence/internal/domain"
)

// JobStore is the in-memory home of all job runtime state, indexed by job id
// and by task. Mutations go through Update so the store's lock serialises
// concurrent timer callbacks; reads return copies.
type JobStore struct {
	mu     sync.RWMutex
	jobs   map[string]*domain.Job
	byTask map[string]map[string]*domain.Job
}

// NewJobStore creates an empty job store.
func NewJobStore() *JobStore {
	return &JobStore{
		jobs:   make(map[string]*domain.Job),
		byTask: make(map[string]map[string]*domain.Job),
	}
}

// Add inserts a job, replacing any previous job with the same id.
func (s *JobStore) Add(job *domain.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[job.ID] = job

	tasks, ok := s.byTask[job.TaskID]
	if !ok {
		tasks = make(map[string]*domain.Job)
		s.byTask[job.TaskID] = tasks
	}
	tasks[job.ID] = job
}

// Get returns a copy of the job, if present.
func (s *JobStore) Get(id string) (domain.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return domain.Job{}, false
	}
	return *job, true
}

// Update applies fn to the stored job under the store lock and returns a
// copy of the result. The second return is false when the job is missing.
func (s *JobStore) Update(id string, fn func(*domain.Job)) (domain.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return domain.Job{}, false
	}
	fn(job)
	return *job, true
}

// ListByTask returns copies of all jobs for a task.
func (s *JobStore) ListByTask(taskID string) []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]domain.Job, 0, len(s.byTask[taskID]))
	for _, job := range s.byTask[taskID] {
		jobs = append(jobs, *job)
	}
	return jobs
}

// ListByTaskAndStatus returns copies of the task's jobs in the given status.
func (s *JobStore) ListByTaskAndStatus(taskID string, status domain.JobStatus) []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var jobs []domain.Job
	for _, job := range s.byTask[taskID] {
		if job.Status == status {
			jobs = append(jobs, *job)
		}
	}
	return jobs
}

// CountByStatus tallies the task's jobs per status.
func (s *JobStore) CountByStatus(taskID string) map[domain.JobStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.JobStatus]int)
	for _, job := range s.byTask[taskID] {
		counts[job.Status]++
	}
	return counts
}

// DeleteByTask removes every job belonging to the task and returns how many
// were removed.
func (s *JobStore) DeleteByTask(taskID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.byTask[taskID]
	for id := range tasks {
		delete(s.jobs, id)
	}
	delete(s.byTask, taskID)
	return len(tasks)
}

// Len returns the total number of stored jobs.
func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// Clear removes all jobs for all tasks.
func (s *JobStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = make(map[string]*domain.Job)
	s.byTask = make(map[string]map[string]*domain.Job)
}
