package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"newsbrief/pkg/config"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "hello")
	assert.Equal(t, "hello", config.GetEnvString("TEST_STRING", "default"))
	assert.Equal(t, "default", config.GetEnvString("TEST_STRING_MISSING", "default"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, config.GetEnvInt("TEST_INT", 7))

	t.Setenv("TEST_INT", "not-a-number")
	assert.Equal(t, 7, config.GetEnvInt("TEST_INT", 7))

	assert.Equal(t, 7, config.GetEnvInt("TEST_INT_MISSING", 7))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	assert.True(t, config.GetEnvBool("TEST_BOOL", false))

	t.Setenv("TEST_BOOL", "0")
	assert.False(t, config.GetEnvBool("TEST_BOOL", true))

	t.Setenv("TEST_BOOL", "yes")
	assert.True(t, config.GetEnvBool("TEST_BOOL", true), "invalid value falls back to default")
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, config.GetEnvDuration("TEST_DURATION", time.Minute))

	t.Setenv("TEST_DURATION", "ninety seconds")
	assert.Equal(t, time.Minute, config.GetEnvDuration("TEST_DURATION", time.Minute))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("TEST_LIST", "technology, science,  health,")
	assert.Equal(t, []string{"technology", "science", "health"},
		config.GetEnvStringList("TEST_LIST", nil))

	assert.Equal(t, []string{"general"},
		config.GetEnvStringList("TEST_LIST_MISSING", []string{"general"}))

	// 区切り文字だけの値はデフォルトに戻る
	t.Setenv("TEST_LIST", " , , ")
	assert.Equal(t, []string{"general"},
		config.GetEnvStringList("TEST_LIST", []string{"general"}))
}
