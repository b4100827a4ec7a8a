package nuci

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleConfig = `
uci:
  network:
    wan:
      proto: dhcp
      hostname: turris
    lan:
      ipaddr: 192.168.1.1
time:
  ntp:
    enabled: "1"
`

func TestParseYAMLAndFindChild(t *testing.T) {
	root, err := ParseYAML([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cases := []struct {
		path string
		want string
	}{
		{"uci.network.wan.proto", "dhcp"},
		{"uci.network.lan.ipaddr", "192.168.1.1"},
		{"time.ntp.enabled", "1"},
	}
	for _, tc := range cases {
		node := root.FindChild(tc.path)
		if node == nil {
			t.Fatalf("path %q not found", tc.path)
		}
		if node.Value != tc.want {
			t.Fatalf("path %q: got %q, want %q", tc.path, node.Value, tc.want)
		}
	}

	if root.FindChild("uci.network.wan6.proto") != nil {
		t.Fatal("missing path must resolve to nil, not error")
	}
	if root.FindChild("") != nil {
		t.Fatal("empty path must resolve to nil")
	}
}

func TestParseYAMLSequence(t *testing.T) {
	root, err := ParseYAML([]byte("servers:\n  - ntp.nic.cz\n  - pool.ntp.org\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := root.FindChild("servers.1"); got == nil || got.Value != "pool.ntp.org" {
		t.Fatalf("expected indexed child, got %+v", got)
	}
}

func TestParseYAMLInvalid(t *testing.T) {
	_, err := ParseYAML([]byte("[unclosed"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %T", err)
	}
}

func TestStaticClientFilter(t *testing.T) {
	root, err := ParseYAML([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	client := StaticClient{Root: root}

	sub, err := client.Get("uci.network")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sub.FindChild("wan.proto") == nil {
		t.Fatal("subtree lookup must work relative to the filter")
	}

	empty, err := client.Get("no.such.subtree")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(empty.Children) != 0 {
		t.Fatal("unmatched filter must yield an empty tree")
	}

	if _, err := (StaticClient{}).Get(""); err == nil {
		t.Fatal("client without a tree must report a store error")
	}
}

func TestConfiguratorBatchesEdits(t *testing.T) {
	var (
		commits int
		flushed []any
	)
	c := NewConfigurator(CommitterFunc(func(edits []any) error {
		commits++
		flushed = append([]any(nil), edits...)
		return nil
	}))

	c.AddConfigUpdate("edit-a")
	c.AddConfigUpdate("edit-b")
	if c.Staged() != 2 {
		t.Fatalf("expected 2 staged edits, got %d", c.Staged())
	}
	if err := c.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if commits != 1 {
		t.Fatalf("expected exactly one commit, got %d", commits)
	}
	if diff := cmp.Diff([]any{"edit-a", "edit-b"}, flushed); diff != "" {
		t.Fatalf("edits mismatch (-want +got):\n%s", diff)
	}
	if c.Staged() != 0 {
		t.Fatal("commit must reset the staged queue")
	}
}

func TestConfiguratorCommitFailureKeepsQueue(t *testing.T) {
	c := NewConfigurator(CommitterFunc(func(edits []any) error {
		return errors.New("store offline")
	}))
	c.AddConfigUpdate("edit-a")

	err := c.Commit()
	if err == nil {
		t.Fatal("expected commit failure")
	}
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %T", err)
	}
	if c.Staged() != 1 {
		t.Fatal("failed commit must keep the staged batch for retry")
	}
}
