//go:build e2e && unix

package main

import (
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startWithServer(t *testing.T, args ...string) (*TUITestFramework, *fakeNYT) {
	t.Helper()
	srv := newFakeNYT(t)
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	require.NoError(t, tf.WriteConfig(srv.URL, ""))
	require.NoError(t, tf.StartApp(args...), "Failed to start app")
	require.True(t, tf.Ready(), "Should show the title bar")
	return tf, srv
}

func TestGridShowsCategories(t *testing.T) {
	t.Parallel()
	tf, _ := startWithServer(t)

	require.NoError(t, tf.WaitForE(func(s string) bool {
		plain := ansiRe.ReplaceAllString(s, "")
		return strings.Contains(plain, "Hardcover Fiction") && strings.Contains(plain, "Travel")
	}, 5*time.Second, "categories should render"))
	require.True(t, tf.SeePlain("▸ Combined Print & E-Book Fiction"), "first cell should be selected")
}

func TestNavigateAndOpenDetail(t *testing.T) {
	t.Parallel()
	tf, _ := startWithServer(t)
	require.True(t, tf.SeePlain("Travel"))

	mark := tf.Mark()
	require.NoError(t, tf.Right())
	require.True(t, tf.SeePlainSince(mark, "▸ Hardcover Fiction"), "right should move to the second column")

	require.NoError(t, tf.Enter())
	require.True(t, tf.OutputContainsPlain("THE TEST BOOK", 5*time.Second), "detail should show the list")
	require.True(t, tf.SeePlain("Ada Example"))

	mark = tf.Mark()
	require.NoError(t, tf.Esc())
	require.True(t, tf.SeePlainSince(mark, "Travel"), "esc should return to the grid")
}

func TestSearchFiltersGrid(t *testing.T) {
	t.Parallel()
	tf, _ := startWithServer(t)
	require.True(t, tf.SeePlain("Travel"))

	require.NoError(t, tf.Search("sci"))
	require.True(t, tf.SeePlain("[Search: sci] 1/6"), "title should count matches")

	require.NoError(t, tf.SendKeys("zzz"))
	require.True(t, tf.SeePlain(`No categories match "scizzz"`), "empty result should say so")

	mark := tf.Mark()
	require.NoError(t, tf.Esc())
	require.True(t, tf.SeePlainSince(mark, "Travel"), "dismissing search should restore the full list")
}

func TestFetchErrorShowsAlertAndRetries(t *testing.T) {
	t.Parallel()
	srv := newFakeNYT(t)
	srv.namesStatus.Store(http.StatusUnauthorized)

	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)
	require.NoError(t, tf.WriteConfig(srv.URL, ""))
	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	require.True(t, tf.OutputContainsPlain("Something went wrong", 5*time.Second), "alert should appear")

	srv.namesStatus.Store(http.StatusOK)
	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyRefresh))
	require.True(t, tf.SeePlainSince(mark, "Travel"), "retry should load the categories")
	require.GreaterOrEqual(t, srv.namesHits.Load(), int32(2))
}

func TestOfflineFlagShowsOfflineScreen(t *testing.T) {
	t.Parallel()
	tf, srv := startWithServer(t, "--offline")

	require.True(t, tf.SeePlain("You're offline"))
	require.NoError(t, tf.SendKeys(KeyRefresh))
	require.True(t, tf.SeePlain("You're offline"))
	require.Zero(t, srv.namesHits.Load(), "nothing is fetched while offline")
}

func TestReconnectLeavesOfflineScreen(t *testing.T) {
	t.Parallel()
	srv := newFakeNYT(t)
	probe := closedAddress(t)

	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)
	require.NoError(t, tf.WriteConfig(srv.URL, probe))
	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())
	require.True(t, tf.OutputContainsPlain("You're offline", 5*time.Second))

	l, err := net.Listen("tcp", probe)
	require.NoError(t, err, "probe port should still be free")
	t.Cleanup(func() { l.Close() })

	require.True(t, tf.OutputContainsPlain("The connection is back", 5*time.Second))
	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyRefresh))
	require.True(t, tf.SeePlainSince(mark, "Travel"))
}

func TestQuitExitsCleanly(t *testing.T) {
	t.Parallel()
	tf, _ := startWithServer(t)
	require.True(t, tf.SeePlain("Travel"))

	require.NoError(t, tf.PressQuit())

	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	select {
	case err := <-done:
		require.NoError(t, err, "app should exit with status 0")
		tf.cmd = nil
	case <-time.After(5 * time.Second):
		t.Fatal("app did not exit after q")
	}
}
