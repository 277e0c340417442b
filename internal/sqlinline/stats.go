package sqlinline

// QDashboardStats returns grand totals plus current- and previous-month
// figures for the percentage deltas. Recomputed on every call; no caching.
const QDashboardStats = `--sql 7fad3313-a651-4057-80dc-39debae8e529
select
  (select count(*) from users) as total_users,
  (select coalesce(sum(amount), 0) from fundings) as total_funding,
  (select count(*) from donation_requests) as total_requests,
  (select count(*) from users
     where created_at >= date_trunc('month', now())) as users_this_month,
  (select count(*) from users
     where created_at >= date_trunc('month', now()) - interval '1 month'
       and created_at <  date_trunc('month', now())) as users_last_month,
  (select coalesce(sum(amount), 0) from fundings
     where created_at >= date_trunc('month', now())) as funding_this_month,
  (select coalesce(sum(amount), 0) from fundings
     where created_at >= date_trunc('month', now()) - interval '1 month'
       and created_at <  date_trunc('month', now())) as funding_last_month,
  (select count(*) from donation_requests
     where created_at >= date_trunc('month', now())) as requests_this_month,
  (select count(*) from donation_requests
     where created_at >= date_trunc('month', now()) - interval '1 month'
       and created_at <  date_trunc('month', now())) as requests_last_month;
`

const QLiveCounts = `--sql 3cd04832-26b7-420a-a89c-3d1363bdf01e
select
  (select count(*) from users where role = 'donor') as total_donors,
  (select count(*) from users where role = 'volunteer') as total_volunteers,
  (select coalesce(sum(amount), 0) from fundings) as total_funding,
  (select count(*) from donation_requests) as total_requests,
  (select count(*) from donation_requests
     where donation_status = 'done') as total_successful;
`
