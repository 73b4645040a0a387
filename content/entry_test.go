package content

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntryAppliesDefaults(t *testing.T) {
	doc := []byte("---\ntitle: Hello World\ndescription: A test post\npubDate: 2024-01-15\n---\n\nBody text.\n")

	e, err := ParseEntry("post-1.md", doc)
	require.NoError(t, err)

	assert.Equal(t, "post-1", e.ID)
	assert.Equal(t, "post-1.md", e.Path)
	assert.Equal(t, "Hello World", e.Title)
	assert.Equal(t, "A test post", e.Description)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), e.PubDate)
	assert.Nil(t, e.UpdatedDate)
	assert.Equal(t, []string{}, e.Tags)
	assert.Equal(t, CategoryOther, e.Category)
	assert.Equal(t, SourceManual, e.Source)
	assert.Equal(t, DefaultAuthor, e.Author)
	assert.False(t, e.Draft)
}

func TestParseEntryAllFields(t *testing.T) {
	doc := []byte(`---
title: "Odoo 17 ORM 技巧"
description: "進階操作"
pubDate: "Jul 08 2022"
updatedDate: 2022-07-09T10:00:00Z
heroImage: ../../assets/hero.png
tags: [Odoo, ERP]
category: odoo
source: github
sourceUrl: https://github.com/kulius/example
author: Someone
draft: true
slug: custom/Odoo Tips
---
`)
	e, err := ParseEntry("2022/whatever.md", doc)
	require.NoError(t, err)

	assert.Equal(t, "custom/odoo-tips", e.ID)
	assert.Equal(t, time.Date(2022, 7, 8, 0, 0, 0, 0, time.UTC), e.PubDate)
	require.NotNil(t, e.UpdatedDate)
	assert.Equal(t, 9, e.UpdatedDate.Day())
	assert.Equal(t, []string{"Odoo", "ERP"}, e.Tags)
	assert.Equal(t, CategoryOdoo, e.Category)
	assert.Equal(t, SourceGitHub, e.Source)
	assert.Equal(t, "Someone", e.Author)
	assert.True(t, e.Draft)
}

func TestParseEntryEmptyTitleIsAllowed(t *testing.T) {
	doc := []byte("---\ntitle: \"\"\ndescription: \"\"\npubDate: 2024-01-15\n---\n")
	e, err := ParseEntry("empty.md", doc)
	require.NoError(t, err)
	assert.Equal(t, "", e.Title)
}

func TestParseEntryErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"no frontmatter", "# just markdown\n", "missing frontmatter"},
		{"unterminated", "---\ntitle: x\n", "missing closing"},
		{"missing title", "---\ndescription: d\npubDate: 2024-01-01\n---\n", "title"},
		{"missing description", "---\ntitle: t\npubDate: 2024-01-01\n---\n", "description"},
		{"missing pubDate", "---\ntitle: t\ndescription: d\n---\n", "pubDate"},
		{"bad date", "---\ntitle: t\ndescription: d\npubDate: someday\n---\n", "invalid date"},
		{"bad category", "---\ntitle: t\ndescription: d\npubDate: 2024-01-01\ncategory: cooking\n---\n", "invalid category"},
		{"bad source", "---\ntitle: t\ndescription: d\npubDate: 2024-01-01\nsource: fax\n---\n", "invalid source"},
		{"bad url", "---\ntitle: t\ndescription: d\npubDate: 2024-01-01\nsourceUrl: not a url\n---\n", "invalid sourceUrl"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseEntry("x.md", []byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseEntryEmptyID(t *testing.T) {
	doc := []byte("---\ntitle: t\ndescription: d\npubDate: 2024-01-01\n---\n")
	_, err := ParseEntry("!!!.md", doc)
	assert.True(t, errors.Is(err, ErrEmptyID))
}

func TestSplitFrontmatterCRLF(t *testing.T) {
	fm, body, err := SplitFrontmatter([]byte("---\r\ntitle: x\r\n---\r\nbody\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "title: x\r\n", string(fm))
	assert.Equal(t, "body\r\n", string(body))
}

func TestSplitFrontmatterEmptyBlock(t *testing.T) {
	fm, body, err := SplitFrontmatter([]byte("---\n---\nbody"))
	require.NoError(t, err)
	assert.Empty(t, fm)
	assert.Equal(t, "body", string(body))
}

func TestIDFromPath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"post-1.md", "post-1"},
		{"Hello World.md", "hello-world"},
		{"2024/Odoo 17 新功能.mdx", "2024/odoo-17-新功能"},
		{"nested\\Windows Path.md", "nested/windows-path"},
		{"what's new?.md", "whats-new"},
		{"  spaced  /  inner .md", "spaced/inner"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IDFromPath(tc.in), tc.in)
	}
}
