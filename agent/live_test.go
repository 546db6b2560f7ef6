package agent_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/formassist/agent"
	"github.com/tbxark/formassist/config"
	"github.com/tbxark/formassist/forms"
	"github.com/tbxark/formassist/llm"
	"github.com/tbxark/formassist/prompt"
)

func initLiveService(t *testing.T) *agent.Service {
	t.Helper()
	if os.Getenv("FORMASSIST_RUN_LIVE_TESTS") != "1" {
		t.Skip("set FORMASSIST_RUN_LIVE_TESTS=1 to run live LLM tests")
		return nil
	}
	require.NoError(t, config.LoadDotEnv("../.env"))
	cfg, err := config.Load("")
	if err != nil {
		t.Skipf("failed to load config: %v", err)
		return nil
	}
	chain, err := llm.BuildChain(context.Background(), cfg.Providers, cfg.ProviderOptions())
	if err != nil {
		t.Skipf("no language model configured: %v", err)
		return nil
	}
	registry := forms.Builtin()
	sessions := agent.NewMemorySessionStore(prompt.NewComposer(registry))
	return agent.NewService(agent.NewEngine(sessions, chain, registry), nil)
}

func TestLiveWithdrawalConversation(t *testing.T) {
	svc := initLiveService(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := svc.StartOrContinueTurn(ctx, "live", "withdrawal", "")
	require.NoError(t, err)
	assert.Equal(t, forms.Withdrawal().Greeting, res.Reply)

	turns := []string{
		"Main branch, Asha Rao, account 12345678901234",
		"Withdraw 5000 rupees today",
		"Yes, that is all correct, please confirm",
	}
	for _, turn := range turns {
		res, err = svc.StartOrContinueTurn(ctx, "live", "withdrawal", turn)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Reply)
		assert.NotContains(t, res.Reply, "FORM_DATA")
		t.Logf("user: %s\nassistant: %s", turn, res.Reply)
		if res.Complete {
			break
		}
	}
	if res.Complete {
		rec, err := svc.GetAccumulatedRecord(ctx, "live")
		require.NoError(t, err)
		assert.Equal(t, "WITHDRAWAL", rec["form_type"])
	}
}
