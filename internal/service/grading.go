package service

import (
	"sort"
	"time"

	"toeic_prep_backend/internal/model"
)

// AnswerInput is one submitted answer. TimeSec is optional client-reported
// time spent on the item.
type AnswerInput struct {
	ItemID  string `json:"itemId" binding:"required"`
	Choice  string `json:"choice" binding:"required,oneof=A B C D"`
	TimeSec int    `json:"timeSec" binding:"gte=0"`
}

// GradedAnswer is the grading record for one submitted answer.
type GradedAnswer struct {
	ItemID     string    `json:"itemId"`
	Choice     string    `json:"choice"`
	Correct    bool      `json:"correct"`
	TimeSec    int       `json:"timeSec"`
	At         time.Time `json:"at"`
	Part       string    `json:"part,omitempty"`
	Tags       []string  `json:"tags"`
	Unresolved bool      `json:"unresolved,omitempty"`
}

type GradeResult struct {
	Total    int            `json:"total"`
	Correct  int            `json:"correct"`
	Detailed []GradedAnswer `json:"detailed"`
}

// GradeAnswers grades a submission against the answer key. Total counts every
// submitted answer, duplicates included. An item id missing from the key is
// graded incorrect and marked unresolved rather than failing the submission:
// the question catalog and live clients can drift, and a partial catalog must
// never block a learner from getting a score. Output order equals input order.
func GradeAnswers(answers []AnswerInput, key map[string]model.Question) GradeResult {
	now := time.Now()
	result := GradeResult{
		Total:    len(answers),
		Detailed: make([]GradedAnswer, 0, len(answers)),
	}

	for _, a := range answers {
		graded := GradedAnswer{
			ItemID:  a.ItemID,
			Choice:  a.Choice,
			TimeSec: a.TimeSec,
			At:      now,
			Tags:    []string{},
		}

		q, ok := key[a.ItemID]
		if !ok {
			graded.Unresolved = true
		} else {
			graded.Part = q.Part
			if len(q.Tags) > 0 {
				graded.Tags = append(graded.Tags, q.Tags...)
			}
			if a.Choice == q.Answer {
				graded.Correct = true
				result.Correct++
			}
		}

		result.Detailed = append(result.Detailed, graded)
	}

	return result
}

type PartBreakdown struct {
	Part     string  `json:"part"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

type TagBreakdown struct {
	Tag      string  `json:"tag"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
	Label    string  `json:"label,omitempty"`
}

// BreakdownByPart groups graded answers by exam section. Unresolved records
// carry no part and are skipped. Rows are ordered ascending by part code.
func BreakdownByPart(detailed []GradedAnswer) []PartBreakdown {
	buckets := make(map[string]*PartBreakdown)
	for _, g := range detailed {
		if g.Part == "" {
			continue
		}
		b, ok := buckets[g.Part]
		if !ok {
			b = &PartBreakdown{Part: g.Part}
			buckets[g.Part] = b
		}
		b.Attempts++
		if g.Correct {
			b.Correct++
		}
	}

	rows := make([]PartBreakdown, 0, len(buckets))
	for _, b := range buckets {
		b.Accuracy = accuracy(b.Correct, b.Attempts)
		rows = append(rows, *b)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Part < rows[j].Part })
	return rows
}

// BreakdownByTag fans each graded answer out to every tag it carries, so an
// answer with N tags contributes one attempt to N buckets. Rows are ordered
// by attempts descending then accuracy ascending, surfacing the frequently
// attempted but weak skills first. Remaining ties keep first-seen submission
// order (sort.SliceStable over buckets built in input order).
func BreakdownByTag(detailed []GradedAnswer) []TagBreakdown {
	buckets := make(map[string]*TagBreakdown)
	order := make([]string, 0)
	for _, g := range detailed {
		for _, tag := range g.Tags {
			b, ok := buckets[tag]
			if !ok {
				b = &TagBreakdown{Tag: tag}
				buckets[tag] = b
				order = append(order, tag)
			}
			b.Attempts++
			if g.Correct {
				b.Correct++
			}
		}
	}

	rows := make([]TagBreakdown, 0, len(order))
	for _, tag := range order {
		b := buckets[tag]
		b.Accuracy = accuracy(b.Correct, b.Attempts)
		rows = append(rows, *b)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Attempts != rows[j].Attempts {
			return rows[i].Attempts > rows[j].Attempts
		}
		return rows[i].Accuracy < rows[j].Accuracy
	})
	return rows
}

// TagLabeler resolves a raw skill code to a display label.
type TagLabeler interface {
	LabelFor(tag string) string
}

// AttachTagLabels fills in display labels. With a nil labeler every tag
// falls back to itself.
func AttachTagLabels(rows []TagBreakdown, labeler TagLabeler) []TagBreakdown {
	for i := range rows {
		if labeler != nil {
			rows[i].Label = labeler.LabelFor(rows[i].Tag)
		} else {
			rows[i].Label = rows[i].Tag
		}
	}
	return rows
}

func accuracy(correct, attempts int) float64 {
	if attempts == 0 {
		return 0
	}
	return float64(correct) / float64(attempts)
}
