package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `nana plans an infant's naps and feeds from caregiver events.

Workflow:
1) Call list_babies to find the baby_id.
2) Record what happened with record_event (sleep_start, sleep_end, feed, diaper).
3) Call get_today_plan. It reuses the stored plan while the latest sleep_end falls
   inside the stored nap, or while no nap has ended and the stored nap is not over.
   Otherwise it projects a new day.
4) generate_plan forces a new projection; daily_report summarises a day.

All times are UTC. See nana://docs/routine for the rules behind a plan.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "nana://docs/routine",
		Name:        "routine_rules",
		Title:       "How a routine is projected",
		Description: "Wake windows, nap counts and nap durations by age, and how naps are placed.",
		Content: `# Routine rules

## Anchor
The latest sleep event anchors the day. A sleep_end is used as is. A sleep_start
(the baby is asleep now) is moved forward by the expected nap length.

## Wake window by age (days)
| Age | Minutes |
|---|---|
| < 30 | 50 |
| 30-89 | 60 |
| 90-149 | 75 |
| 150-209 | 90 |
| 210-269 | 105 |
| 270-359 | 120 |
| 360+ | 150 |

## Naps per day
| Age | Naps |
|---|---|
| <= 90 | 6 |
| 91-180 | 4 |
| 181-270 | 3 |
| 271-365 | 2 |
| 366+ | 1 |

## Nap length
The mean of the naps recorded over the last three days, in whole minutes.
With fewer than two naps it is 120 minutes for ages 366-730 and 90 otherwise.

## Placement
The first nap starts one wake window after the anchor, or 15 minutes from now
if that is already past. Each feed is 15 minutes after its nap ends and the
next nap starts one wake window after the previous nap ends.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
