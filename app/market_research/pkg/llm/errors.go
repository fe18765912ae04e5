package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// classify 把 SDK 错误归类为统一的哨兵错误，原始错误信息保留在文本中
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{ErrAuth, ErrRateLimited, ErrTimeout, ErrUnavailable, ErrEmptyResponse, ErrNotConfigured} {
		if errors.Is(err, known) {
			return err
		}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		case apiErr.StatusCode == 429 || apiErr.StatusCode == 529:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		case apiErr.StatusCode == 408 || apiErr.StatusCode == 504:
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// eino 的 openai 组件只暴露错误文本，按状态码关键字判断
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "too many requests") || strings.Contains(msg, "rate limit"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") ||
		strings.Contains(msg, "invalid_api_key") || strings.Contains(msg, "unauthorized"):
		return fmt.Errorf("%w: %v", ErrAuth, err)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
