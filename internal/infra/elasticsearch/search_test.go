package elasticsearch

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"vtube-go/internal/model"
)

func TestBuildVideoSearchQuery(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		latest      bool
		wantPattern string
		wantSorts   int
	}{
		{"lowercased and wrapped", "  Intro ", false, "*intro*", 2},
		{"wildcards escaped", "a*b?", false, `*a\*b\?*`, 2},
		{"latest sorts by date only", "go", true, "*go*", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildVideoSearchQuery(tt.query, tt.latest)

			raw, err := json.Marshal(q)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			body := string(raw)
			for _, field := range []string{"title.raw", "description.raw", "category.raw"} {
				if !strings.Contains(body, `"`+field+`"`) {
					t.Errorf("query missing field %s: %s", field, body)
				}
			}

			patternJSON, _ := json.Marshal(tt.wantPattern)
			if strings.Count(body, `"value":`+string(patternJSON)) != 3 {
				t.Errorf("pattern %s not applied to all fields: %s", patternJSON, body)
			}
			if !strings.Contains(body, `"case_insensitive":true`) {
				t.Errorf("case_insensitive missing: %s", body)
			}

			sorts, _ := q["sort"].([]interface{})
			if len(sorts) != tt.wantSorts {
				t.Fatalf("sort = %v, want %d entries", sorts, tt.wantSorts)
			}
			if q["size"] != maxSearchResults {
				t.Errorf("size = %v", q["size"])
			}
		})
	}
}

func TestVideoToESDoc(t *testing.T) {
	uploaded := time.Date(2024, 2, 3, 4, 5, 6, 0, time.FixedZone("CST", 8*3600))
	v := &model.Video{
		ID:         "v1",
		Title:      "Intro",
		Category:   "Education",
		ChannelID:  "c1",
		UploaderID: "u1",
		Views:      7,
		UploadDate: uploaded,
		Channel:    model.Channel{ID: "c1", ChannelName: "Tech"},
		Uploader:   model.User{ID: "u1", Username: "alice"},
	}

	doc := videoToESDoc(v)
	if doc.ChannelName != "Tech" || doc.UploaderName != "alice" || doc.Views != 7 {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.UploadDate != "2024-02-02T20:05:06Z" {
		t.Fatalf("upload_date = %s, want UTC", doc.UploadDate)
	}
}
