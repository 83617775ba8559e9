package student

import "sync"

// classroomLocks serializes admission control per classroom: the occupancy
// count and the following insert/move must not interleave with another
// admission against the same classroom. Locks are created on demand and
// live as long as the service; the map is bounded by the classroom count.
type classroomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newClassroomLocks() *classroomLocks {
	return &classroomLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *classroomLocks) get(classroomID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[classroomID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[classroomID] = lock
	}
	return lock
}
