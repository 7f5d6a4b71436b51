package lsh

// JobRegistry is the ordered collection of a shell's live jobs. It owns
// an insertion-ordered slice rather than an intrusive linked list: O(1)
// amortized append, O(n) erase (fine at shell-sized job counts), and
// stable iteration order.
type JobRegistry struct {
	jobs    []*Job
	current *Job
}

// NewJobRegistry returns an empty registry.
func NewJobRegistry() *JobRegistry {
	return &JobRegistry{}
}

// Create appends a new, empty Job with id = (max existing id) + 1, or 1 if
// the registry is empty. Erasing a job below the highest id never frees
// its id for reuse; erasing the highest-id job (or every job) lets the
// next Create hand out that id again.
func (r *JobRegistry) Create() *Job {
	id := 1
	if n := len(r.jobs); n > 0 {
		id = r.jobs[n-1].ID + 1
	}
	job := &Job{ID: id}
	r.jobs = append(r.jobs, job)
	return job
}

// FindByID does a linear scan for a job with the given id.
func (r *JobRegistry) FindByID(id int) (*Job, bool) {
	for _, j := range r.jobs {
		if j.ID == id {
			return j, true
		}
	}
	return nil, false
}

// FindByPid does a two-level scan (jobs, then each job's processes) for
// the Process owning pid.
func (r *JobRegistry) FindByPid(pid int) (*Process, bool) {
	for _, j := range r.jobs {
		for p := j.FirstProcess; p != nil; p = p.Next {
			if p.Pid == pid {
				return p, true
			}
		}
	}
	return nil, false
}

// Erase unlinks job from the registry. If job was the current job,
// current becomes unset; CleanupJobs (poller.go) re-derives it as the new
// tail.
func (r *JobRegistry) Erase(job *Job) {
	for i, j := range r.jobs {
		if j == job {
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			break
		}
	}
	if r.current == job {
		r.current = nil
	}
}

// Jobs returns the registry's jobs in insertion order. The returned slice
// is a copy; mutating it does not affect the registry.
func (r *JobRegistry) Jobs() []*Job {
	out := make([]*Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}

// Current returns the distinguished current job, if any.
func (r *JobRegistry) Current() (*Job, bool) {
	if r.current == nil {
		return nil, false
	}
	return r.current, true
}

// SetCurrent designates job as the current job.
func (r *JobRegistry) SetCurrent(job *Job) {
	r.current = job
}

// tail returns the most recently inserted job still in the registry, or
// nil if empty.
func (r *JobRegistry) tail() *Job {
	if len(r.jobs) == 0 {
		return nil
	}
	return r.jobs[len(r.jobs)-1]
}
