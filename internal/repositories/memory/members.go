package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
)

func (s *Store) FindMemberByID(_ context.Context, memberID string) (*domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[memberID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &m, nil
}

func (s *Store) findMember(match func(domain.Member) bool) (*domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if match(m) {
			return &m, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) FindMemberByUsername(_ context.Context, username string) (*domain.Member, error) {
	return s.findMember(func(m domain.Member) bool { return m.Username == username })
}

func (s *Store) FindMemberByEmail(_ context.Context, email string) (*domain.Member, error) {
	if email == "" {
		return nil, apperrors.ErrNotFound
	}
	return s.findMember(func(m domain.Member) bool { return m.Email == email })
}

func (s *Store) ListMembersByRole(_ context.Context, role domain.Role) ([]domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Member{}
	for _, m := range s.members {
		if m.Role == role {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *Store) CountMembersByRole(ctx context.Context, role domain.Role) (int, error) {
	members, err := s.ListMembersByRole(ctx, role)
	return len(members), err
}

func (s *Store) uniqueMemberFields(m domain.Member) error {
	for _, other := range s.members {
		if other.MemberID == m.MemberID {
			continue
		}
		if other.Username == m.Username || (m.Email != "" && other.Email == m.Email) {
			return fmt.Errorf("%w: username or email already registered", apperrors.ErrDuplicate)
		}
	}
	return nil
}

func (s *Store) SaveMember(_ context.Context, member domain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[member.MemberID]; ok {
		return fmt.Errorf("%w: member %s", apperrors.ErrDuplicate, member.MemberID)
	}
	if err := s.uniqueMemberFields(member); err != nil {
		return err
	}
	s.members[member.MemberID] = member
	return nil
}

func (s *Store) UpdateMember(_ context.Context, member domain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.members[member.MemberID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if err := s.uniqueMemberFields(member); err != nil {
		return err
	}
	member.Username = current.Username
	member.CreatedAt = current.CreatedAt
	member.CreatedBy = current.CreatedBy
	s.members[member.MemberID] = member
	return nil
}

func (s *Store) DeleteMember(_ context.Context, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[memberID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.members, memberID)
	s.detach(
		func(e *domain.LedgerEntry) bool { return eq(e.MemberID, memberID) },
		func(e *domain.LedgerEntry) { e.MemberID = nil },
	)
	return nil
}
