package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-validator/models"
	"house-validator/utils"
)

func TestRunnerRunsBothChecks(t *testing.T) {
	a := tuple("taipei", "591", "apartment")
	b := tuple("taipei", "591", "house")
	src := &fakeSource{snapshots: []*models.Snapshot{
		snap("1", a, map[string]*float64{"monthly_price": num(100)}),
		snap("1", b, map[string]*float64{"monthly_price": num(40)}),
		snap("2", a, map[string]*float64{"monthly_price": num(100)}),
		snap("2", a, map[string]*float64{"monthly_price": num(60)}),
	}}
	groups := models.FieldGroups{Static: staticFields, Drift: []string{"monthly_price"}}

	var out bytes.Buffer
	runner := NewRunner(src, groups, NewReporter(&out), utils.NewNopLogger())

	w := models.Window{From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)}
	res, err := runner.Run(context.Background(), w)
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, w, src.window)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 4, res.Snapshots)
	assert.Equal(t, models.Ratio{Invalid: 1, Total: 2}, res.Static.Ratio)
	assert.Equal(t, models.Ratio{Invalid: 1, Total: 2}, res.Drift.Ratio)

	assert.Equal(t,
		"[STATIC] House 1 changed 2 ([1, 1]) times!!\n"+
			"[STATIC] Invalid house: 1/2\n"+
			"[SMALL] House 1 field monthly_price change too much, from 40 to 100\n"+
			"[SMALL] Invalid house: 1/2\n",
		out.String())
}

func TestRunnerEmptyWindow(t *testing.T) {
	groups := models.FieldGroups{Static: staticFields, Drift: []string{"monthly_price"}}
	runner := NewRunner(&fakeSource{}, groups, nil, utils.NewNopLogger())

	res, err := runner.Run(context.Background(), models.Window{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Snapshots)
	assert.Empty(t, res.Static.Findings)
	assert.Empty(t, res.Drift.Findings)
}

func TestRunnerPropagatesSourceError(t *testing.T) {
	boom := errors.New("connection reset")
	groups := models.FieldGroups{Static: staticFields, Drift: []string{"monthly_price"}}
	runner := NewRunner(&fakeSource{err: boom}, groups, nil, utils.NewNopLogger())

	_, err := runner.Run(context.Background(), models.Window{})
	assert.ErrorIs(t, err, boom)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "25.00%", percent(models.Ratio{Invalid: 1, Total: 4}))
	assert.Equal(t, "n/a", percent(models.Ratio{}))
}
