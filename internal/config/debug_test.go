package config

import (
	"fmt"
	"testing"
	"time"
)

func TestGoString(t *testing.T) {
	cfg := AppConfig{
		Name:           "demo",
		Host:           "localhost",
		Port:           8080,
		Environment:    "test",
		DataDir:        "/var/lib/demo",
		RequestTimeout: 1500 * time.Millisecond,
		Tags:           []string{"blue", `quo"te`},
	}

	want := `AppConfig{Name: "demo", Host: "localhost", Port: 8080, Environment: "test", DataDir: "/var/lib/demo", RequestTimeout: 1.5s, Tags: ["blue", "quo\"te"]}`
	if got := fmt.Sprintf("%#v", cfg); got != want {
		t.Fatalf("unexpected debug form:\n got %s\nwant %s", got, want)
	}
}
