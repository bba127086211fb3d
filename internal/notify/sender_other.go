//go:build !linux && !darwin && !windows

package notify

func newLinuxSender() visualSender   { return &noopSender{} }
func newDarwinSender() visualSender  { return &noopSender{} }
func newWindowsSender() visualSender { return &noopSender{} }
