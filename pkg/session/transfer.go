package session

import "github.com/google/uuid"

// Resource operations recorded in metrics.
const (
	opClone   = "clone"
	opMove    = "move"
	opRelease = "release"
)

// Clone returns an independent copy of s with its own avatar allocation.
// The copy shares the graph position and controller, gets a fresh ID,
// and is registered with the controller as the active handle.
func (s *Session) Clone() *Session {
	c := s.shallowCopy()
	c.id = uuid.NewString()
	c.avatar = s.avatar.Clone()
	c.metrics.RecordResource(opClone)
	c.logger.Debug("Session cloned", "from", s.id, "to", c.id)
	c.register()
	return c
}

// CopyFrom makes s an independent copy of src, keeping its own ID.
// The previous avatar of s is released first. Copying onto itself is a no-op.
func (s *Session) CopyFrom(src *Session) {
	if s == src {
		return
	}
	s.releaseAvatar()
	s.avatar = src.avatar.Clone()
	s.assignRefs(src)
	s.metrics.RecordResource(opClone)
	s.logger.Debug("Session copied", "from", src.id, "to", s.id)
	s.register()
}

// Take moves s into a new Session and returns it.
// The avatar is transferred without copying; s loses its avatar, position and
// controller, so releasing s afterwards frees nothing.
func (s *Session) Take() *Session {
	d := s.shallowCopy()
	d.avatar = s.avatar.Take()
	d.metrics.RecordResource(opMove)
	d.logger.Debug("Session moved", "session_id", d.id)
	d.register()
	s.invalidate()
	return d
}

// Adopt hands s to ctrl by move and returns the live handle, which the Take
// registers with ctrl. s is left invalidated.
func Adopt(ctrl Controller, s *Session) *Session {
	s.SetController(ctrl)
	return s.Take()
}

// MoveFrom moves src into s. The previous avatar of s is released first and src
// is left invalidated. Moving onto itself is a no-op.
func (s *Session) MoveFrom(src *Session) {
	if s == src {
		return
	}
	s.releaseAvatar()
	s.avatar = src.avatar.Take()
	s.id = src.id
	s.assignRefs(src)
	s.metrics.RecordResource(opMove)
	s.logger.Debug("Session moved", "session_id", s.id)
	s.register()
	src.invalidate()
}

// Release frees the avatar. It is safe to call more than once and on a
// moved-from session.
func (s *Session) Release() {
	s.releaseAvatar()
}

func (s *Session) releaseAvatar() {
	if s.avatar.Valid() {
		s.metrics.RecordResource(opRelease)
	}
	s.avatar.Release()
	s.avatar = nil
}

// shallowCopy copies every field except the avatar.
func (s *Session) shallowCopy() *Session {
	c := &Session{id: s.id}
	c.assignRefs(s)
	return c
}

// assignRefs copies the non-owning references and collaborators of src.
func (s *Session) assignRefs(src *Session) {
	s.current = src.current
	s.root = src.root
	s.history = append([]int(nil), src.history...)
	s.controller = src.controller
	s.rng = src.rng
	s.logger = src.logger
	s.metrics = src.metrics
}

// invalidate clears the references of a moved-from session.
func (s *Session) invalidate() {
	s.avatar = nil
	s.current = nil
	s.root = nil
	s.history = nil
	s.controller = nil
}

func (s *Session) register() {
	if s.controller != nil {
		s.controller.RegisterActiveHandle(s)
	}
}
