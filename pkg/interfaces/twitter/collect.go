package twitter

// collect drains a data/error channel pair returned by the client methods.
// The producer closes both channels when it returns, sending at most one
// error, so ranging over data cannot block forever.
func collect[T any](dataChan chan T, errChan chan error) ([]T, error) {
	var out []T
	for item := range dataChan {
		out = append(out, item)
	}
	if err, ok := <-errChan; ok && err != nil {
		return out, err
	}
	return out, nil
}
