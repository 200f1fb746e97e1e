package services

import (
	"context"
	"testing"

	"job-board-backend/internal/apperror"
	"job-board-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestApplicantService_Apply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "Alice", "alice@example.com")
	job := f.createJob(t, owner)

	jobs, err := f.applicants.Apply(ctx, job.ID.Hex(), validApplicantInput(), upload("cv.pdf"))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Len(t, jobs[0].Applicants, 1)

	applicant := jobs[0].Applicants[0]
	assert.Equal(t, "Jane Doe", applicant.Name)
	assert.Equal(t, job.ID, applicant.JobPost)
	assert.NotEmpty(t, applicant.Resume.URL)
	assert.Equal(t, []string{FolderResumes}, f.uploader.folders)

	events := f.notifier.eventsFor(owner.ID.Hex())
	require.Len(t, events, 1)
	assert.Equal(t, EventApplicantCreated, events[0].Type)
	assert.Equal(t, job.ID.Hex(), events[0].JobPostID)
}

func TestApplicantService_ApplyRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "Alice", "alice@example.com")
	job := f.createJob(t, owner)

	_, err := f.applicants.Apply(ctx, "abc", validApplicantInput(), upload("cv.pdf"))
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))

	_, err = f.applicants.Apply(ctx, primitive.NewObjectID().Hex(), validApplicantInput(), upload("cv.pdf"))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = f.applicants.Apply(ctx, job.ID.Hex(), validApplicantInput(), nil)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	in := validApplicantInput()
	in.Email = "nope"
	_, err = f.applicants.Apply(ctx, job.ID.Hex(), in, upload("cv.pdf"))
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	assert.Zero(t, f.uploader.count())
	n, err := f.applicants.Count(ctx, job.ID.Hex())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestApplicantService_ApplyCompensates(t *testing.T) {
	store := memory.New()
	f := newFixtureWithStore(t, store, false)
	ctx := context.Background()
	owner := f.register(t, "Alice", "alice@example.com")
	job := f.createJob(t, owner)

	f.applicants.jobs = &flakyJobs{JobPostRepository: store.JobPosts, failAddApplicant: true}

	_, err := f.applicants.Apply(ctx, job.ID.Hex(), validApplicantInput(), upload("cv.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errInjected)

	n, err := store.Applicants.DeleteByJobPost(ctx, job.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.notifier.eventsFor(owner.ID.Hex()))
}

func TestApplicantService_ReadOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "Alice", "alice@example.com")
	job := f.createJob(t, owner)

	for i := 0; i < 3; i++ {
		_, err := f.applicants.Apply(ctx, job.ID.Hex(), validApplicantInput(), upload("cv.pdf"))
		require.NoError(t, err)
	}

	applicants, err := f.applicants.ListForJob(ctx, job.ID.Hex())
	require.NoError(t, err)
	count, err := f.applicants.Count(ctx, job.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Len(t, applicants, count)

	one, err := f.applicants.Get(ctx, applicants[1].ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, applicants[1].ID, one.ID)

	_, err = f.applicants.Get(ctx, "abc")
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	_, err = f.applicants.Get(ctx, primitive.NewObjectID().Hex())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = f.applicants.ListForJob(ctx, primitive.NewObjectID().Hex())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	_, err = f.applicants.Count(ctx, "abc")
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

func TestApplicantService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "Alice", "alice@example.com")
	job := f.createJob(t, owner)

	jobs, err := f.applicants.Apply(ctx, job.ID.Hex(), validApplicantInput(), upload("cv.pdf"))
	require.NoError(t, err)
	applicantID := jobs[0].Applicants[0].ID

	require.NoError(t, f.applicants.Delete(ctx, job.ID.Hex(), applicantID.Hex()))

	_, err = f.applicants.Get(ctx, applicantID.Hex())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	count, err := f.applicants.Count(ctx, job.ID.Hex())
	require.NoError(t, err)
	assert.Zero(t, count)

	events := f.notifier.eventsFor(owner.ID.Hex())
	require.Len(t, events, 2)
	assert.Equal(t, EventApplicantDeleted, events[1].Type)
}

func TestApplicantService_DeleteRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "Alice", "alice@example.com")
	job := f.createJob(t, owner)
	other := f.createJob(t, owner)

	jobs, err := f.applicants.Apply(ctx, job.ID.Hex(), validApplicantInput(), upload("cv.pdf"))
	require.NoError(t, err)
	var applicantID primitive.ObjectID
	for _, j := range jobs {
		if j.ID == job.ID {
			applicantID = j.Applicants[0].ID
		}
	}

	err = f.applicants.Delete(ctx, other.ID.Hex(), applicantID.Hex())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	err = f.applicants.Delete(ctx, job.ID.Hex(), "abc")
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))

	// ids are checked before any lookup
	err = f.applicants.Delete(ctx, primitive.NewObjectID().Hex(), "abc")
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	assert.Equal(t, "Invalid jobId or applicantId", apperror.MessageOf(err))
	err = f.applicants.Delete(ctx, "abc", applicantID.Hex())
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))

	err = f.applicants.Delete(ctx, job.ID.Hex(), primitive.NewObjectID().Hex())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = f.applicants.Get(ctx, applicantID.Hex())
	assert.NoError(t, err)
}

func TestApplicantService_DeleteCompensates(t *testing.T) {
	store := memory.New()
	f := newFixtureWithStore(t, store, false)
	ctx := context.Background()
	owner := f.register(t, "Alice", "alice@example.com")
	job := f.createJob(t, owner)

	jobs, err := f.applicants.Apply(ctx, job.ID.Hex(), validApplicantInput(), upload("cv.pdf"))
	require.NoError(t, err)
	applicantID := jobs[0].Applicants[0].ID

	f.applicants.applicants = &flakyApplicants{ApplicantRepository: store.Applicants, failDelete: true}

	err = f.applicants.Delete(ctx, job.ID.Hex(), applicantID.Hex())
	require.Error(t, err)
	assert.ErrorIs(t, err, errInjected)

	reloaded, err := store.JobPosts.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{applicantID}, reloaded.Applicants)
	_, err = store.Applicants.GetByID(ctx, applicantID)
	assert.NoError(t, err)
}

func TestApplicantService_DeleteRequiresListedApplicant(t *testing.T) {
	store := memory.New()
	f := newFixtureWithStore(t, store, false)
	ctx := context.Background()
	owner := f.register(t, "Alice", "alice@example.com")
	job := f.createJob(t, owner)

	jobs, err := f.applicants.Apply(ctx, job.ID.Hex(), validApplicantInput(), upload("cv.pdf"))
	require.NoError(t, err)
	applicantID := jobs[0].Applicants[0].ID
	require.NoError(t, store.JobPosts.RemoveApplicant(ctx, job.ID, applicantID))

	err = f.applicants.Delete(ctx, job.ID.Hex(), applicantID.Hex())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = store.Applicants.GetByID(ctx, applicantID)
	assert.NoError(t, err)
}
