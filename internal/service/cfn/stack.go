// Package cfn はCloudFormationスタックから同期対象のリソースを検出する
package cfn

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

// ResourceTypeCloudFrontDistribution はCloudFrontディストリビューションのリソースタイプ
const ResourceTypeCloudFrontDistribution = "AWS::CloudFront::Distribution"

// StackResourceAPI はスタックリソース取得に必要なCloudFormation APIのサブセット
type StackResourceAPI interface {
	DescribeStackResources(ctx context.Context, params *cloudformation.DescribeStackResourcesInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackResourcesOutput, error)
}

// GetStackResources はスタックからリソース一覧を取得する関数
func GetStackResources(ctx context.Context, cfnClient StackResourceAPI, stackName string, out io.Writer) ([]types.StackResource, error) {
	fmt.Fprintf(out, "🔍 スタック '%s' からリソースを検索中...\n", stackName)
	resp, err := cfnClient.DescribeStackResources(ctx, &cloudformation.DescribeStackResourcesInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return nil, fmt.Errorf("CloudFormationスタックのリソース取得に失敗: %w", err)
	}

	// スタック存在確認
	if len(resp.StackResources) == 0 {
		return nil, fmt.Errorf("スタック '%s' にリソースが見つかりませんでした", stackName)
	}

	return resp.StackResources, nil
}

// GetAllCloudFrontFromStack はCloudFormationスタックからすべてのCloudFrontディストリビューションIDを取得します
func GetAllCloudFrontFromStack(ctx context.Context, cfnClient StackResourceAPI, stackName string, out io.Writer) ([]string, error) {
	stackResources, err := GetStackResources(ctx, cfnClient, stackName, out)
	if err != nil {
		return nil, err
	}

	var distributionIds []string
	for _, resource := range stackResources {
		if aws.ToString(resource.ResourceType) == ResourceTypeCloudFrontDistribution && resource.PhysicalResourceId != nil {
			distributionIds = append(distributionIds, *resource.PhysicalResourceId)
			fmt.Fprintf(out, "🔍 検出されたCloudFrontディストリビューション: %s\n", *resource.PhysicalResourceId)
		}
	}

	return distributionIds, nil
}
