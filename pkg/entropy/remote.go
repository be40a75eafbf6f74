package entropy

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/seedshuffle/seedshuffle/pkg/errors"
	"github.com/seedshuffle/seedshuffle/pkg/httputil"
)

// Remote fetches seeds from an external true-randomness provider over HTTP.
//
// The provider contract is deliberately small: a GET request with a `bytes`
// query parameter must answer with JSON of the shape
//
//	{"data": "<hex-encoded random bytes>"}
//
// containing at least the requested number of bytes. Transient failures
// (transport errors, 5xx responses) are retried with exponential backoff;
// responses are never cached.
type Remote struct {
	endpoint string
	client   *http.Client
}

// NewRemote creates a client for the provider at the given endpoint URL.
func NewRemote(endpoint string) *Remote {
	return &Remote{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Bits fetches an integer in [0, 2^bits) from the provider.
func (r *Remote) Bits(ctx context.Context, bits int) (*big.Int, error) {
	if err := validateBits(bits); err != nil {
		return nil, err
	}

	nbytes := bytesFor(bits)
	url := fmt.Sprintf("%s?bytes=%d", r.endpoint, nbytes)

	var payload struct {
		Data string `json:"data"`
	}
	err := httputil.RetryWithBackoff(ctx, func() error {
		return r.fetch(ctx, url, &payload)
	})
	if err != nil {
		return nil, err
	}

	buf, err := hex.DecodeString(payload.Data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "provider returned malformed hex data")
	}
	if len(buf) < nbytes {
		return nil, errors.New(errors.ErrCodeNetwork, "provider returned %d bytes, want %d", len(buf), nbytes)
	}
	buf = buf[:nbytes]
	maskToBits(buf, bits)
	return new(big.Int).SetBytes(buf), nil
}

func (r *Remote) fetch(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "building provider request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetching entropy from %s", r.endpoint)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "provider returned status %d", resp.StatusCode)}
	default:
		return errors.New(errors.ErrCodeNetwork, "provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "decoding provider response")
	}
	return nil
}
