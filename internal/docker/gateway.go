// gateway.go discovers where "the host" is from the adapter's point of
// view when the adapter itself runs inside a container.
//
// Ports published by the compose project bind on the host, so a caller
// inside a container cannot reach them via loopback. Instead, the
// adapter discovers its own container identity from process mount
// metadata and asks the container runtime for that container's default
// network gateway, which routes back to the host.
package docker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

const (
	// dockerEnvFile is created by the container runtime in the root of
	// every container filesystem.
	dockerEnvFile = "/.dockerenv"

	// mountInfoFile lists the mount metadata of the current process.
	mountInfoFile = "/proc/self/mountinfo"

	// containerPathMarker is the runtime path segment that precedes the
	// container ID in mount source paths of containerized processes.
	containerPathMarker = "/docker/containers/"
)

// InsideContainer reports whether the current process runs inside a
// Docker container, detected via the runtime's marker file.
func InsideContainer() bool {
	_, err := os.Stat(dockerEnvFile)
	return err == nil
}

// CurrentContainerID discovers the ID of the container the current
// process runs in by scanning process mount metadata for the runtime's
// container path marker and taking the path segment that follows it.
func CurrentContainerID() (string, error) {
	f, err := os.Open(mountInfoFile)
	if err != nil {
		return "", fmt.Errorf("failed to read mount metadata: %w", err)
	}
	defer func() { _ = f.Close() }()

	return containerIDFromMountInfo(f)
}

// containerIDFromMountInfo scans mountinfo-formatted lines for the
// container path marker and returns the path segment that follows it.
func containerIDFromMountInfo(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, containerPathMarker)
		if idx < 0 {
			continue
		}

		rest := line[idx+len(containerPathMarker):]
		if end := strings.IndexByte(rest, '/'); end > 0 {
			return rest[:end], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to scan mount metadata: %w", err)
	}

	return "", errors.New("no container id found in mount metadata")
}

// GatewayIP returns the default network gateway address of the given
// container, queried via a container inspection. Network names are
// visited in sorted order so a multi-network container yields a stable
// answer.
func (c *Client) GatewayIP(ctx context.Context, containerID string) (string, error) {
	insp, err := c.inner.ContainerInspect(ctx, containerID)
	if err != nil {
		return "", fmt.Errorf("failed to inspect container %q: %w", containerID, err)
	}
	if insp.NetworkSettings == nil {
		return "", fmt.Errorf("container %q has no network settings", containerID)
	}

	names := make([]string, 0, len(insp.NetworkSettings.Networks))
	for name := range insp.NetworkSettings.Networks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ep := insp.NetworkSettings.Networks[name]
		if ep != nil && ep.Gateway != "" {
			return ep.Gateway, nil
		}
	}

	return "", fmt.Errorf("container %q has no network gateway", containerID)
}

// GatewayHost resolves the gateway address of the container the current
// process runs in. It is the one-call convenience used by the port
// lookup when execution is detected to be inside a container.
func GatewayHost(ctx context.Context) (string, error) {
	id, err := CurrentContainerID()
	if err != nil {
		return "", err
	}

	cli, err := NewClient()
	if err != nil {
		return "", err
	}
	defer func() { _ = cli.Close() }()

	return cli.GatewayIP(ctx, id)
}
