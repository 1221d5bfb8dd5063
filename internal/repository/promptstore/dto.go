package promptstore

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/promptdex/internal/domain/prompt"
)

// promptDTO is the flat hash representation of a prompt record.
type promptDTO struct {
	id           string
	title        string
	description  string
	content      string
	categoryID   string
	categoryName string
	author       string
	tags         []string
	usageCount   int
	createdAt    time.Time
	isActive     bool
}

func toDTO(p prompt.Prompt) promptDTO {
	return promptDTO{
		id:           p.ID(),
		title:        p.Title(),
		description:  p.Description(),
		content:      p.Content(),
		categoryID:   p.CategoryID(),
		categoryName: p.CategoryName(),
		author:       p.Author(),
		tags:         p.Tags(),
		usageCount:   p.UsageCount(),
		createdAt:    p.CreatedAt(),
		isActive:     p.IsActive(),
	}
}

func (d promptDTO) toDomain() prompt.Prompt {
	return prompt.Reconstruct(
		d.id, d.title, d.description, d.content,
		d.categoryID, d.categoryName, d.author,
		d.tags, d.usageCount, d.createdAt, d.isActive,
	)
}

func (d promptDTO) toFields() (map[string]string, error) {
	tags, err := json.Marshal(d.tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}

	active := "0"
	if d.isActive {
		active = "1"
	}

	return map[string]string{
		"id":            d.id,
		"title":         d.title,
		"description":   d.description,
		"content":       d.content,
		"category_id":   d.categoryID,
		"category_name": d.categoryName,
		"author":        d.author,
		"tags":          string(tags),
		"usage_count":   strconv.Itoa(d.usageCount),
		"created_at":    d.createdAt.UTC().Format(time.RFC3339Nano),
		"is_active":     active,
	}, nil
}

func fromFields(fields map[string]string) (promptDTO, error) {
	var d promptDTO

	d.id = fields["id"]
	if d.id == "" {
		return promptDTO{}, fmt.Errorf("record missing id field")
	}
	d.title = fields["title"]
	d.description = fields["description"]
	d.content = fields["content"]
	d.categoryID = fields["category_id"]
	d.categoryName = fields["category_name"]
	d.author = fields["author"]

	if raw := fields["tags"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &d.tags); err != nil {
			return promptDTO{}, fmt.Errorf("unmarshal tags for %s: %w", d.id, err)
		}
	}

	if raw := fields["usage_count"]; raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return promptDTO{}, fmt.Errorf("parse usage_count for %s: %w", d.id, err)
		}
		d.usageCount = n
	}

	if raw := fields["created_at"]; raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return promptDTO{}, fmt.Errorf("parse created_at for %s: %w", d.id, err)
		}
		d.createdAt = ts
	}

	d.isActive = fields["is_active"] == "1"

	return d, nil
}
