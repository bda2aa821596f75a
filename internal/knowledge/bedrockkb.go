package knowledge

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/rs/zerolog"
)

// BedrockBase is the production Base backend: a Bedrock Knowledge Base
// queried through bedrockagentruntime's Retrieve API.
type BedrockBase struct {
	client *bedrockagentruntime.Client
	log    zerolog.Logger
}

func NewBedrockBase(client *bedrockagentruntime.Client, log zerolog.Logger) *BedrockBase {
	return &BedrockBase{client: client, log: log}
}

func (b *BedrockBase) Query(ctx context.Context, knowledgeBaseID, query string, topK int) ([]Passage, error) {
	out, err := b.client.Retrieve(ctx, &bedrockagentruntime.RetrieveInput{
		KnowledgeBaseId: aws.String(knowledgeBaseID),
		RetrievalQuery:  &types.KnowledgeBaseQuery{Text: aws.String(query)},
		RetrievalConfiguration: &types.KnowledgeBaseRetrievalConfiguration{
			VectorSearchConfiguration: &types.KnowledgeBaseVectorSearchConfiguration{
				NumberOfResults: aws.Int32(int32(topK)),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock knowledge base retrieve: %w", err)
	}

	passages := make([]Passage, 0, len(out.RetrievalResults))
	for _, r := range out.RetrievalResults {
		content, ok := r.Content.(*types.RetrievalResultContentMemberText)
		if !ok || content.Value.Text == nil {
			continue
		}
		passages = append(passages, Passage{Text: *content.Value.Text})
	}
	return passages, nil
}
