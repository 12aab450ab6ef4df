package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunValidate_AllValid(t *testing.T) {
	resetOptions(t)
	validateOpts.max = 10

	cmd, buf := newTestCommand()
	err := runValidate(cmd, []string{"1-3", "inv(last)"})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "1-3: valid")
	assert.Contains(t, buf.String(), "inv(last): valid")
}

func TestRunValidate_Invalid(t *testing.T) {
	resetOptions(t)
	validateOpts.max = 10

	cmd, buf := newTestCommand()
	err := runValidate(cmd, []string{"1-3", "3-1,2"})
	require.Error(t, err)
	assert.Equal(t, "1 of 2 expressions invalid", err.Error())

	output := buf.String()
	assert.Contains(t, output, "3-1,2: invalid")
	assert.Contains(t, output, "Clean: 2")
}

func TestRunValidate_QuietHidesValid(t *testing.T) {
	resetOptions(t)
	validateOpts.max = 10
	quiet = true

	cmd, buf := newTestCommand()
	_ = runValidate(cmd, []string{"1-3", "12"})

	assert.NotContains(t, buf.String(), "1-3")
	assert.Contains(t, buf.String(), "12: invalid")
}

func TestRunValidate_Names(t *testing.T) {
	resetOptions(t)
	nameOpts.list = "id,height"

	cmd, _ := newTestCommand()
	require.NoError(t, runValidate(cmd, []string{"id-height"}))

	err := runValidate(cmd, []string{"id-weight"})
	require.Error(t, err)
}
