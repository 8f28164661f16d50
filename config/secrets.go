package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSMParameterSuffix names the companion variable holding an SSM parameter
// name, e.g. MONGODB_URI_SSM_PARAMETER for MONGODB_URI.
const SSMParameterSuffix = "_SSM_PARAMETER"

// ParameterGetter is the subset of the SSM client used to read secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SecretResolver looks a key up in the environment first and then in AWS
// Systems Manager Parameter Store.
type SecretResolver struct {
	config map[string]string
	newSSM func(ctx context.Context) (ParameterGetter, error)
}

func NewSecretResolver(config map[string]string) *SecretResolver {
	return &SecretResolver{config: config, newSSM: defaultSSMClient}
}

// WithParameterGetter replaces the AWS client, mostly for tests.
func (s *SecretResolver) WithParameterGetter(getter ParameterGetter) *SecretResolver {
	s.newSSM = func(context.Context) (ParameterGetter, error) {
		return getter, nil
	}
	return s
}

// Resolve returns the value of key. When it is unset and key+_SSM_PARAMETER
// names a parameter, the decrypted parameter value is returned instead. An
// empty result with a nil error means neither source is configured.
func (s *SecretResolver) Resolve(ctx context.Context, key string) (string, error) {
	if value := GetString(s.config, key, ""); value != "" {
		return value, nil
	}

	paramName := GetString(s.config, key+SSMParameterSuffix, "")
	if paramName == "" {
		return "", nil
	}

	client, err := s.newSSM(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config for %s: %w", key, err)
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("read ssm parameter %s: %w", paramName, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("ssm parameter %s has no value", paramName)
	}

	return aws.ToString(out.Parameter.Value), nil
}

func defaultSSMClient(ctx context.Context) (ParameterGetter, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return ssm.NewFromConfig(cfg), nil
}
