package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParameterGetter struct {
	values map[string]string
	err    error
	asked  []string
}

func (f *fakeParameterGetter) GetParameter(_ context.Context, params *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.asked = append(f.asked, aws.ToString(params.Name))
	if f.err != nil {
		return nil, f.err
	}
	value, ok := f.values[aws.ToString(params.Name)]
	if !ok {
		return &ssm.GetParameterOutput{}, nil
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(value)}}, nil
}

func TestSecretResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("environment wins", func(t *testing.T) {
		getter := &fakeParameterGetter{}
		r := NewSecretResolver(map[string]string{
			"MONGODB_URI":               "mongodb://env",
			"MONGODB_URI_SSM_PARAMETER": "/blog/mongo",
		}).WithParameterGetter(getter)

		value, err := r.Resolve(ctx, "MONGODB_URI")
		require.NoError(t, err)
		assert.Equal(t, "mongodb://env", value)
		assert.Empty(t, getter.asked)
	})

	t.Run("falls back to ssm", func(t *testing.T) {
		getter := &fakeParameterGetter{values: map[string]string{"/blog/mongo": "mongodb://ssm"}}
		r := NewSecretResolver(map[string]string{
			"MONGODB_URI_SSM_PARAMETER": "/blog/mongo",
		}).WithParameterGetter(getter)

		value, err := r.Resolve(ctx, "MONGODB_URI")
		require.NoError(t, err)
		assert.Equal(t, "mongodb://ssm", value)
		assert.Equal(t, []string{"/blog/mongo"}, getter.asked)
	})

	t.Run("nothing configured", func(t *testing.T) {
		getter := &fakeParameterGetter{}
		r := NewSecretResolver(map[string]string{}).WithParameterGetter(getter)

		value, err := r.Resolve(ctx, "MONGODB_URI")
		require.NoError(t, err)
		assert.Empty(t, value)
		assert.Empty(t, getter.asked)
	})

	t.Run("ssm failure", func(t *testing.T) {
		getter := &fakeParameterGetter{err: errors.New("access denied")}
		r := NewSecretResolver(map[string]string{
			"MONGODB_URI_SSM_PARAMETER": "/blog/mongo",
		}).WithParameterGetter(getter)

		_, err := r.Resolve(ctx, "MONGODB_URI")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("parameter without value", func(t *testing.T) {
		getter := &fakeParameterGetter{values: map[string]string{}}
		r := NewSecretResolver(map[string]string{
			"MONGODB_URI_SSM_PARAMETER": "/blog/missing",
		}).WithParameterGetter(getter)

		_, err := r.Resolve(ctx, "MONGODB_URI")
		assert.Error(t, err)
	})
}
