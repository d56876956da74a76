package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for identity service end-to-end
 * tests: container setup plus a thin JSON client over the HTTP API.
 */

const (
	testImageName = "beam-server-test:latest"

	ownerUsername = "admin"
	ownerPassword = "Admin123!"
)

// TestMain builds the Docker image once before all tests and removes it
// after the run completes.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Beam server Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Beam server Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/server/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// containerEnv returns the base environment for a test container. Rate
// limits are raised well above production defaults so rapid test traffic
// does not trip them; rate limit behaviour itself is covered by a
// dedicated container running the production limits.
func containerEnv(relaxedLimits bool) map[string]string {
	env := map[string]string{
		"BEAM_DATABASE_FILE": "/tmp/beam.db",
		"BEAM_PEPPER_FILE":   "/tmp/pepper",
		"BEAM_SECRET_FILE":   "/tmp/secret",
		"BEAM_ASSETS_DIR":    "/tmp/assets",
		"BEAM_ISSUER":        "beam-e2e",
		"ENV":                "test",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
	}
	if relaxedLimits {
		env["RATELIMIT_STRICT_REQUESTS"] = "1000"
		env["RATELIMIT_STRICT_WINDOW_SEC"] = "60"
		env["RATELIMIT_STRICT_BURST"] = "1000"
		env["RATELIMIT_MODERATE_REQUESTS"] = "1000"
		env["RATELIMIT_MODERATE_BURST"] = "1000"
	}
	return env
}

func startContainer(t *testing.T, env map[string]string) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// setupServer starts the identity service with relaxed rate limits.
func setupServer(t *testing.T) string {
	t.Helper()
	return startContainer(t, containerEnv(true))
}

// setupServerWithDefaultRateLimits starts the service with production
// rate limits, for the rate limiting tests only.
func setupServerWithDefaultRateLimits(t *testing.T) string {
	t.Helper()
	return startContainer(t, containerEnv(false))
}

// setupServerWithForwardAuth starts the service with the forwarded-auth
// bridge enabled.
func setupServerWithForwardAuth(t *testing.T) string {
	t.Helper()
	env := containerEnv(true)
	env["BEAM_FORWARD_AUTH_ENABLED"] = "true"
	return startContainer(t, env)
}

// apiClient is a minimal JSON client for the identity HTTP API.
type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// do sends a request with an optional JSON body and decodes the JSON
// response into out when out is non-nil. It returns the response with a
// replayable body so callers can also assert on status and headers.
func (c *apiClient) do(t *testing.T, method, path string, body, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body = io.NopCloser(bytes.NewReader(raw))

	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp
}

type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// register submits a registration and returns the response status code.
func (c *apiClient) register(t *testing.T, username, password, inviteToken string) int {
	t.Helper()
	resp := c.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username":     username,
		"password":     password,
		"invite_token": inviteToken,
	}, nil)
	return resp.StatusCode
}

// login authenticates and stores the session token on the client.
func (c *apiClient) login(t *testing.T, username, password string) {
	t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	resp := c.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, out.Token)
	c.token = out.Token
}

// bootstrapOwner registers the first account and logs in as it.
func bootstrapOwner(t *testing.T, baseURL string) *apiClient {
	t.Helper()
	c := newClient(baseURL)
	require.Equal(t, http.StatusOK, c.register(t, ownerUsername, ownerPassword, ""))
	c.login(t, ownerUsername, ownerPassword)
	return c
}

// mintInvite mints an invite as the client's current user.
func (c *apiClient) mintInvite(t *testing.T) string {
	t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	resp := c.do(t, http.MethodPost, "/api/v1/auth/new_invite", nil, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, out.Token)
	return out.Token
}

type whoamiBody struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Picture  *string  `json:"picture"`
}

func (c *apiClient) whoami(t *testing.T) whoamiBody {
	t.Helper()
	var out whoamiBody
	resp := c.do(t, http.MethodGet, "/api/v1/auth/whoami", nil, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return out
}

func (c *apiClient) adminExists(t *testing.T) bool {
	t.Helper()
	var out struct {
		Exists bool `json:"exists"`
	}
	resp := c.do(t, http.MethodGet, "/api/v1/auth/admin_exists", nil, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return out.Exists
}
