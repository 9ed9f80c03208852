package carteira

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
)

// Quote and reference-rate services publish at most once a day, so every
// outbound request goes through a disk cache whose key includes the current
// date. Yesterday's entries simply stop being hit and are left for the OS to
// clean out of the temp dir.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	sum := sha1.Sum(fmt.Appendf(nil, "%s %s %s", Today(), req.Method, req.URL))
	path := filepath.Join(os.TempDir(), fmt.Sprintf("carteira-%x", sum))

	if raw, err := os.ReadFile(path); err == nil {
		return http.ReadResponse(bufio.NewReader(bytes.NewReader(raw)), req)
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%s %s%s %s", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	raw, err := httputil.DumpResponse(resp, true)
	if err == nil {
		err = os.WriteFile(path, raw, 0644)
	}
	if err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// daily returns a client whose responses are cached on disk for the day.
func daily() *http.Client {
	return &http.Client{Transport: &diskCache{http.DefaultTransport}}
}

// jwget GETs addr and unmarshals the JSON body into data.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %s%s: %s", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, data)
}
