package cloud

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/simplereplay-cli/model"
)

const testBase = "http://docs.test"

func newMockedProvider(t *testing.T) *HTTPProvider {
	t.Helper()
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewHTTPProvider(testBase+"/", client, nil)
}

func TestSaveProjectCreatesWithPost(t *testing.T) {
	p := newMockedProvider(t)

	var received Project
	httpmock.RegisterResponder(http.MethodPost, testBase+"/projects",
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&received); err != nil {
				return httpmock.NewStringResponse(http.StatusBadRequest, err.Error()), nil
			}
			return httpmock.NewJsonResponse(http.StatusCreated, map[string]string{"id": "01HPROJECT"})
		})

	doc := &Project{Title: "Argentina - EEUU", Clips: []model.Clip{{ID: "c1", TSec: 10, StartSec: 7, EndSec: 18}}}
	id, err := p.SaveProject(context.Background(), "", doc)
	require.NoError(t, err)
	assert.Equal(t, "01HPROJECT", id)
	assert.Equal(t, "Argentina - EEUU", received.Title)
	require.Len(t, received.Clips, 1)
	assert.Equal(t, 18.0, received.Clips[0].EndSec)
}

func TestSaveProjectOverwritesWithPut(t *testing.T) {
	p := newMockedProvider(t)
	httpmock.RegisterResponder(http.MethodPut, testBase+"/projects/abc",
		httpmock.NewStringResponder(http.StatusOK, `{}`))

	id, err := p.SaveProject(context.Background(), "abc", &Project{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Equal(t, 1, httpmock.GetCallCountInfo()["PUT "+testBase+"/projects/abc"])
}

func TestSaveProjectSurfacesStatus(t *testing.T) {
	p := newMockedProvider(t)
	httpmock.RegisterResponder(http.MethodPost, testBase+"/projects",
		httpmock.NewStringResponder(http.StatusInternalServerError, "boom"))

	_, err := p.SaveProject(context.Background(), "", &Project{})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "boom", se.Body)
}

func TestLoadProjectMissingReturnsNil(t *testing.T) {
	p := newMockedProvider(t)
	httpmock.RegisterResponder(http.MethodGet, testBase+"/projects/nope",
		httpmock.NewStringResponder(http.StatusNotFound, `{"error":"not found"}`))

	doc, err := p.LoadProject(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestLoadProjectDefaultsMissingFields(t *testing.T) {
	p := newMockedProvider(t)
	httpmock.RegisterResponder(http.MethodGet, testBase+"/projects/p1",
		httpmock.NewStringResponder(http.StatusOK, `{"title":"","games":[{"id":"g1","title":"Final"}]}`))

	doc, err := p.LoadProject(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "p1", doc.ID)
	assert.Equal(t, DefaultTitle, doc.Title)
	assert.Len(t, doc.Games, 1)
	assert.NotNil(t, doc.Clips)
	assert.NotNil(t, doc.PlaylistItems)
	assert.NotNil(t, doc.ClipFlags)
	assert.NotNil(t, doc.ClipComments)
}

func TestListProjectsIsCachedUntilSave(t *testing.T) {
	p := newMockedProvider(t)
	listKey := "GET " + testBase + "/projects?limit=20"
	httpmock.RegisterResponder(http.MethodGet, testBase+"/projects?limit=20",
		httpmock.NewStringResponder(http.StatusOK, `{"projects":[{"id":"a","title":"A"},{"id":"b"}]}`))
	httpmock.RegisterResponder(http.MethodPost, testBase+"/projects",
		httpmock.NewStringResponder(http.StatusCreated, `{"id":"c"}`))

	projects, err := p.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, DefaultTitle, projects[1].Title)

	_, err = p.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetCallCountInfo()[listKey])

	_, err = p.SaveProject(context.Background(), "", &Project{})
	require.NoError(t, err)
	_, err = p.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, httpmock.GetCallCountInfo()[listKey])
}

func TestListProjectsCacheIsNotShared(t *testing.T) {
	p := newMockedProvider(t)
	httpmock.RegisterResponder(http.MethodGet, testBase+"/projects?limit=20",
		httpmock.NewStringResponder(http.StatusOK, `{"projects":[{"id":"a","title":"A"}]}`))

	first, err := p.ListProjects(context.Background())
	require.NoError(t, err)
	first[0].Title = "changed"

	second, err := p.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", second[0].Title)
	second[0].Title = "changed again"

	third, err := p.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", third[0].Title)
	assert.Equal(t, 1, httpmock.GetCallCountInfo()["GET "+testBase+"/projects?limit=20"])
}

func TestShareURLRoundTrip(t *testing.T) {
	link := ShareURL("https://replay.example.com/app/?foo=bar#top", "01HXYZ")
	assert.Equal(t, "https://replay.example.com/app/?project=01HXYZ", link)

	id, err := ProjectIDFromURL(link)
	require.NoError(t, err)
	assert.Equal(t, "01HXYZ", id)

	id, err = ProjectIDFromURL("https://replay.example.com/app/")
	require.NoError(t, err)
	assert.Empty(t, id)
}
