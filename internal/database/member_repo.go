package database

import (
	"fmt"

	"github.com/diegoclair/attendance-bot/internal/domain/contract"
	"github.com/diegoclair/attendance-bot/internal/domain/entity"
)

type memberRepo struct {
	db dbConn
}

func newMemberRepo(db dbConn) contract.MemberRepo {
	return &memberRepo{db: db}
}

func (r *memberRepo) Create(member *entity.Member) error {
	query := `
		INSERT INTO members (member_id, display_name, note)
		VALUES (?, ?, ?)
	`

	_, err := r.db.Exec(query,
		member.ID,
		member.DisplayName,
		member.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

// GetAll returns the roster in insertion order
func (r *memberRepo) GetAll() ([]*entity.Member, error) {
	query := `
		SELECT member_id, display_name, note, created_at
		FROM members
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*entity.Member
	for rows.Next() {
		member := &entity.Member{}
		err := rows.Scan(
			&member.ID,
			&member.DisplayName,
			&member.Note,
			&member.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

func (r *memberRepo) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM members`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}
