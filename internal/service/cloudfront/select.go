package cloudfront

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
)

// DistributionGetter はディストリビューション詳細取得に必要なCloudFront APIのサブセット
type DistributionGetter interface {
	GetDistribution(ctx context.Context, params *cloudfront.GetDistributionInput, optFns ...func(*cloudfront.Options)) (*cloudfront.GetDistributionOutput, error)
}

// DescribeDistribution はディストリビューションの表示用情報を取得します
func DescribeDistribution(ctx context.Context, client DistributionGetter, distributionId string) (DistributionInfo, error) {
	result, err := client.GetDistribution(ctx, &cloudfront.GetDistributionInput{
		Id: aws.String(distributionId),
	})
	if err != nil {
		return DistributionInfo{}, err
	}

	info := DistributionInfo{Id: distributionId}
	if dist := result.Distribution; dist != nil {
		info.DomainName = aws.ToString(dist.DomainName)
		if dist.DistributionConfig != nil {
			info.Comment = aws.ToString(dist.DistributionConfig.Comment)
		}
	}
	return info, nil
}

// SelectDistribution は複数のディストリビューションから一つを選択します
func SelectDistribution(ctx context.Context, client DistributionGetter, distributionIds []string, in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "\n複数のCloudFrontディストリビューションが見つかりました。選択してください:")

	// 各ディストリビューションの詳細情報を取得して表示
	for i, id := range distributionIds {
		info, err := DescribeDistribution(ctx, client, id)
		if err != nil {
			// エラーが発生してもIDは表示
			fmt.Fprintf(out, "  %d. %s (詳細情報の取得に失敗)\n", i+1, id)
			continue
		}
		fmt.Fprintf(out, "  %d. %s - %s (%s)\n", i+1, id, info.DomainName, info.Comment)
	}

	// ユーザーの選択を待つ
	reader := bufio.NewReader(in)
	fmt.Fprintf(out, "\n番号を入力してください (1-%d): ", len(distributionIds))

	input, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", fmt.Errorf("入力エラー: %w", err)
	}

	// 選択番号を解析
	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || choice < 1 || choice > len(distributionIds) {
		return "", fmt.Errorf("無効な選択です")
	}

	selectedId := distributionIds[choice-1]
	fmt.Fprintf(out, "\n✅ ディストリビューション '%s' を選択しました\n", selectedId)

	return selectedId, nil
}
