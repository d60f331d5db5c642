package main

import (
	"testing"
)

// main must return immediately when SKIP_SERVER_RUN is set so the package can be tested.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func TestServiceIdentity(t *testing.T) {
	if serviceName != "roster-dedup-service" || appVersion == "" {
		t.Fatalf("unexpected service identity %s/%s", serviceName, appVersion)
	}
}
