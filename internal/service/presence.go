package service

import "sync"

// Roster 維護當前在線的顯示名稱集合
// 整個進程只有一份，名稱保持登記順序，同一名稱最多出現一次
type Roster struct {
	mu      sync.RWMutex
	names   []string
	present map[string]bool
}

func NewRoster() *Roster {
	return &Roster{
		present: make(map[string]bool),
	}
}

// Claim 登記一個顯示名稱
// 名稱未被占用時加入並回傳 true，已存在時不做任何事回傳 false
func (r *Roster) Claim(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.present[name] {
		return false
	}
	r.present[name] = true
	r.names = append(r.names, name)
	return true
}

// Release 移除一個顯示名稱，名稱不存在時為空操作
func (r *Roster) Release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.present[name] {
		return
	}
	delete(r.present, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
}

// Snapshot 回傳當前名單的副本，按登記順序
func (r *Roster) Snapshot() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]string, len(r.names))
	copy(snapshot, r.names)
	return snapshot
}
