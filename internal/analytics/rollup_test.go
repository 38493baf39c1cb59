package analytics

import (
	"testing"
	"time"

	"github.com/SatishBanchhere/abc-classes-sub002/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func question(id, subjectID, topicID string, difficulty models.DifficultyLevel, createdAt time.Time) *models.Question {
	return &models.Question{
		ID:           id,
		SubjectID:    subjectID,
		TopicID:      topicID,
		Difficulty:   difficulty,
		QuestionType: "mcq",
		Description:  "What is the answer to question " + id + "?",
		CreatedAt:    createdAt,
	}
}

func TestFold_GroupsBySubject(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	questions := []*models.Question{
		question("q1", "phy", "t1", models.DifficultyEasy, base),
		question("q2", "phy", "t1", models.DifficultyHard, base.Add(time.Hour)),
		question("q3", "chem", "t2", models.DifficultyEasy, base),
	}

	rollup := Fold(questions, func(q *models.Question) (string, bool) {
		return q.SubjectID, true
	}, FoldOptions{})

	require.Equal(t, 2, rollup.Len())
	assert.Equal(t, []string{"phy", "chem"}, rollup.Keys())

	phy, ok := rollup.Bucket("phy")
	require.True(t, ok)
	assert.Equal(t, 2, phy.Count)
	assert.Equal(t, 1, phy.Difficulty.Count("Easy"))
	assert.Equal(t, 1, phy.Difficulty.Count("Hard"))
	assert.Equal(t, base.Add(time.Hour), phy.LastCreated)
}

func TestFold_KeyFuncExcludes(t *testing.T) {
	questions := []*models.Question{
		question("q1", "phy", "t1", models.DifficultyEasy, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
		question("q2", "phy", "t1", models.DifficultyEasy, time.Time{}),
	}

	// Group by creation date; a record without one has no key.
	rollup := Fold(questions, func(q *models.Question) (string, bool) {
		if q.CreatedAt.IsZero() {
			return "", false
		}
		return DateKey(q.CreatedAt), true
	}, FoldOptions{})

	require.Equal(t, 1, rollup.Len())
	bucket, _ := rollup.Bucket("2026-03-10")
	assert.Equal(t, 1, bucket.Count)
}

func TestFold_Deterministic(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	questions := []*models.Question{
		question("q1", "chem", "t2", models.DifficultyEasy, base),
		question("q2", "phy", "t1", models.DifficultyEasy, base),
		question("q3", "bio", "t3", models.DifficultyEasy, base),
	}
	key := func(q *models.Question) (string, bool) { return q.SubjectID, true }

	first := Fold(questions, key, FoldOptions{}).Keys()
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Fold(questions, key, FoldOptions{}).Keys())
	}
}

func TestBucketObserve_NamesAndPayloads(t *testing.T) {
	names := NewNameIndex(
		[]*models.Subject{{ID: "phy", Name: "Physics"}},
		[]*models.Topic{{ID: "t1", Name: "Mechanics"}},
	)

	q := question("q1", "phy", "t1", models.DifficultyMedium, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	q.Options = datatypes.JSON(`["a","b"]`)
	q.Solution = datatypes.JSON(`{}`)

	dangling := question("q2", "ghost", "ghost-topic", models.DifficultyMedium, time.Time{})

	b := Accumulate([]*models.Question{q, dangling}, FoldOptions{Names: names})

	assert.Equal(t, 2, b.Count)
	assert.Equal(t, 1, b.SubjectNames.Len())
	assert.Equal(t, 1, b.SubjectNames.Count("Physics"))
	assert.Equal(t, 1, b.TopicNames.Count("Mechanics"))
	assert.Equal(t, 1, b.WithOptions)
	assert.Equal(t, 0, b.WithSolutions)
}

func TestBucketObserve_LengthStats(t *testing.T) {
	questions := []*models.Question{
		{ID: "q1", Description: "ab"},
		{ID: "q2", Description: "abcd"},
	}

	b := Accumulate(questions, FoldOptions{})
	stats := LengthStatsOf(b)
	assert.Equal(t, 3, stats.Avg)
	assert.Equal(t, 2, stats.Min)
	assert.Equal(t, 4, stats.Max)
}

func TestBucketObserve_PreviewCap(t *testing.T) {
	questions := make([]*models.Question, 5)
	for i := range questions {
		questions[i] = &models.Question{ID: "q", Description: "some question body"}
	}

	b := Accumulate(questions, FoldOptions{PreviewLimit: 100, MaxPreviews: 3})
	assert.Len(t, b.Previews, 3)
}

func TestCompositeKeyRoundTrip(t *testing.T) {
	key := CompositeKey("phy", "t1", "Kinematics")
	assert.Equal(t, "phy|t1|Kinematics", key)
	assert.Equal(t, []string{"phy", "t1", "Kinematics"}, SplitKey(key))
}

func TestCompositeKey_SeparatorInValue(t *testing.T) {
	// Names are free-form; a separator inside one must not shift the
	// dimensions or collide with a key built from different parts.
	parts := []string{"2026-03-14", "10", "Maths | Stats"}
	assert.Equal(t, parts, SplitKey(CompositeKey(parts...)))

	aliased := CompositeKey("a|b", "c")
	distinct := CompositeKey("a", "b|c")
	assert.NotEqual(t, aliased, distinct)
	assert.Equal(t, []string{"a|b", "c"}, SplitKey(aliased))
	assert.Equal(t, []string{"a", "b|c"}, SplitKey(distinct))

	escapes := []string{`back\slash`, `mixed\|value`}
	assert.Equal(t, escapes, SplitKey(CompositeKey(escapes...)))
}

func TestTimeKeys(t *testing.T) {
	ts := time.Date(2026, 2, 9, 7, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-09", DateKey(ts))
	assert.Equal(t, "07", HourKey(ts))
	assert.Equal(t, "2026-W07", WeekKey(ts))
}

func TestHistogramInsertionOrder(t *testing.T) {
	h := NewHistogram()
	h.Add("b")
	h.Add("a")
	h.Add("b")
	h.AddN("c", 5)

	assert.Equal(t, []string{"b", "a", "c"}, h.Keys())
	assert.Equal(t, 2, h.Count("b"))
	assert.Equal(t, 8, h.Total())
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 5}, h.ToMap())
}
