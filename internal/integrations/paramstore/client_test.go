package paramstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a simple fake implementing ssmAPI for tests.
type fakeAPI struct {
	getOut *ssm.GetParameterOutput
	getErr error
	lastIn *ssm.GetParameterInput
}

func (f *fakeAPI) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.lastIn = in
	return f.getOut, f.getErr
}

func strPtr(s string) *string { return &s }

func TestGetOptionalParameter_TrimsNameAndDecrypts(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name: strPtr("/hello-guru/skill_name"), Value: strPtr("hello guru"),
	}}}
	client, err := New(api)
	require.NoError(t, err)
	v, ok, err := client.GetOptionalParameter(context.Background(), " /hello-guru/skill_name ")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hello guru", v)
	require.Equal(t, "/hello-guru/skill_name", *api.lastIn.Name)
	require.True(t, *api.lastIn.WithDecryption)
}

func TestGetOptionalParameter_Present(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name: strPtr("p"), Value: strPtr("amzn1.ask.skill.abc"), Type: types.ParameterTypeSecureString,
	}}}
	client, err := New(api)
	require.NoError(t, err)
	v, ok, err := client.GetOptionalParameter(context.Background(), "p")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "amzn1.ask.skill.abc", v)
}

func TestGetOptionalParameter_NotFoundIsNotAnError(t *testing.T) {
	api := &fakeAPI{getErr: fmt.Errorf("operation error SSM: GetParameter: %w", &types.ParameterNotFound{})}
	client, err := New(api)
	require.NoError(t, err)
	v, ok, err := client.GetOptionalParameter(context.Background(), "p")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)
}

func TestGetOptionalParameter_MissingValue(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: strPtr("p"), Value: nil}}}
	client, err := New(api)
	require.NoError(t, err)
	_, ok, err := client.GetOptionalParameter(context.Background(), "p")
	require.False(t, ok)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing value")
}

func TestGetOptionalParameter_ApiError(t *testing.T) {
	api := &fakeAPI{getErr: errors.New("boom")}
	client, err := New(api)
	require.NoError(t, err)
	_, ok, err := client.GetOptionalParameter(context.Background(), "p")
	require.False(t, ok)
	require.Error(t, err)
	require.ErrorContains(t, err, "boom")
}

func TestGetOptionalParameter_ClientNotInitialized(t *testing.T) {
	_, _, err := (&Client{}).GetOptionalParameter(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not initialized")
}

func TestGetOptionalParameter_EmptyName(t *testing.T) {
	client, err := New(&fakeAPI{})
	require.NoError(t, err)
	_, _, err = client.GetOptionalParameter(context.Background(), "  ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")
}
