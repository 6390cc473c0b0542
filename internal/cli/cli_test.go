package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haithamsoil/nasgh/internal/advisor"
	"github.com/haithamsoil/nasgh/internal/config"
	"github.com/haithamsoil/nasgh/internal/domain"
	"github.com/haithamsoil/nasgh/internal/targets"
)

type fakeResolver struct {
	resolution *targets.Resolution
	err        error
	gotPlant   string
	gotStage   domain.Stage
}

func (f *fakeResolver) Resolve(_ context.Context, plant string, stage domain.Stage, _ domain.Reading) (*targets.Resolution, error) {
	f.gotPlant = plant
	f.gotStage = stage
	return f.resolution, f.err
}

type fakeAdvisor struct {
	text string
	err  error
}

func (f *fakeAdvisor) Advise(context.Context, advisor.AdviceRequest) (string, error) {
	return f.text, f.err
}

func (f *fakeAdvisor) Chat(context.Context, advisor.ChatRequest) (string, error) {
	return f.text, f.err
}

func testApp(resolver *fakeResolver, adv *fakeAdvisor) *App {
	cfg := config.Default()
	return &App{
		Config:   &cfg,
		Resolver: resolver,
		Advisor:  adv,
		Logger:   slog.New(slog.DiscardHandler),
	}
}

func TestTargetsCmdPrintsResolution(t *testing.T) {
	resolver := &fakeResolver{
		resolution: &targets.Resolution{
			PlantKey: "tomato",
			Targets:  domain.RangeRecord{domain.ParamPH: {Min: 6.0, Max: 6.8}},
			Source:   targets.SourceStatic,
		},
	}

	root := NewRootCmd(testApp(resolver, &fakeAdvisor{}))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"targets", "طماطم", "خضري"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "طماطم", resolver.gotPlant)
	assert.Equal(t, domain.StageVegetative, resolver.gotStage)
	assert.Contains(t, out.String(), `"plantKey": "tomato"`)
	assert.Contains(t, out.String(), `"from": "static"`)
}

func TestTargetsCmdRejectsUnknownStage(t *testing.T) {
	root := NewRootCmd(testApp(&fakeResolver{}, &fakeAdvisor{}))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"targets", "tomato", "dormant"})

	assert.Error(t, root.Execute())
}

func TestAdviseCmdClassifiesAndPrintsAdvice(t *testing.T) {
	resolver := &fakeResolver{
		resolution: &targets.Resolution{
			PlantKey: "tomato",
			Targets:  domain.RangeRecord{domain.ParamPH: {Min: 6.0, Max: 6.8}},
			Source:   targets.SourceCached,
		},
	}
	adv := &fakeAdvisor{text: "ارفع الرقم الهيدروجيني بإضافة الجير"}

	root := NewRootCmd(testApp(resolver, adv))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(`{"ph":5.2}`))
	root.SetArgs([]string{"advise", "--plant", "tomato", "--stage", "vegetative"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "deficient")
	assert.Contains(t, out.String(), adv.text)
}

func TestAdviseCmdRejectsEmptyReading(t *testing.T) {
	root := NewRootCmd(testApp(&fakeResolver{}, &fakeAdvisor{}))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(`{"note":"no sensors"}`))
	root.SetArgs([]string{"advise", "--plant", "tomato"})

	assert.Error(t, root.Execute())
}
